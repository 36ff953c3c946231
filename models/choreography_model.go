package models

// Choreography is referenced by tracks. Deleting one clears the reference
// on its tracks.
type Choreography struct {
	ID          uint   `json:"-" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"size:64;not null;uniqueIndex"`
	Description string `json:"description" gorm:"size:255;not null"`
}

func (c *Choreography) Apply(doc map[string]any) error {
	name, err := requiredString(doc, "name")
	if err != nil {
		return err
	}
	description, err := requiredString(doc, "description")
	if err != nil {
		return err
	}
	c.Name = name
	c.Description = description
	return nil
}

func (c *Choreography) Document() map[string]any {
	return map[string]any{
		"name":        c.Name,
		"description": c.Description,
	}
}
