package models

// Artist owns albums. Deleting an artist cascades to its albums and, through
// them, to their tracks.
type Artist struct {
	ID         uint    `json:"-" gorm:"primaryKey"`
	Name       string  `json:"name" gorm:"size:255;not null"`
	UniqueName string  `json:"unique_name" gorm:"size:255;not null;uniqueIndex"`
	Albums     []Album `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
}

// Apply replaces every writable field with the values of doc.
func (a *Artist) Apply(doc map[string]any) error {
	name, err := requiredString(doc, "name")
	if err != nil {
		return err
	}
	uniqueName, err := requiredString(doc, "unique_name")
	if err != nil {
		return err
	}
	a.Name = name
	a.UniqueName = uniqueName
	return nil
}

// Document returns the writable fields as they appear on the wire.
func (a *Artist) Document() map[string]any {
	return map[string]any{
		"name":        a.Name,
		"unique_name": a.UniqueName,
	}
}
