package mason

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/faizan/stadium/schemas"
)

// Namespace prefix and well-known URLs of the stadium API.
const (
	NS               = "stadium"
	EntryPointURL    = "/api/"
	LinkRelationsURL = "/instadium/link-relations/"

	ArtistProfile       = "/profiles/artist/"
	AlbumProfile        = "/profiles/album/"
	TrackProfile        = "/profiles/track/"
	ChoreographyProfile = "/profiles/choreography/"
	ErrorProfile        = "/profiles/error/"
)

// Link relations. Names without a namespace are IANA relations.
const (
	RelSelf       = "self"
	RelProfile    = "profile"
	RelCollection = "collection"
	RelEdit       = "edit"
	RelAuthor     = "author"
	RelUp         = "up"

	RelArtistsAll        = NS + ":artists-all"
	RelAlbumsAll         = NS + ":albums-all"
	RelChoreographiesAll = NS + ":choreographies-all"
	RelAlbumsBy          = NS + ":albums-by"
	RelAddArtist         = NS + ":add-artist"
	RelAddAlbum          = NS + ":add-album"
	RelAddTrack          = NS + ":add-track"
	RelAddChoreography   = NS + ":add-choreography"
	RelChoreography      = NS + ":choreography"
	RelDelete            = NS + ":delete"
)

// ArtistsURL is the artist collection.
func ArtistsURL() string { return "/api/artists/" }

// ArtistURL addresses an artist by unique name.
func ArtistURL(uniqueName string) string { return ArtistsURL() + segment(uniqueName) }

// ArtistAlbumsURL is the collection of albums owned by an artist.
func ArtistAlbumsURL(uniqueName string) string { return ArtistURL(uniqueName) + "albums/" }

// AlbumsURL is the collection of every album; artist-less albums live under it.
func AlbumsURL() string { return "/api/albums/" }

// AlbumCollectionURL is the collection an album belongs to. An empty artist
// means the album has no artist.
func AlbumCollectionURL(artist string) string {
	if artist == "" {
		return AlbumsURL()
	}
	return ArtistAlbumsURL(artist)
}

// AlbumURL addresses an album by artist unique name and title.
func AlbumURL(artist, title string) string {
	return AlbumCollectionURL(artist) + segment(title)
}

// TrackURL addresses a track by its position on an album.
func TrackURL(artist, title string, disc, number int) string {
	return AlbumURL(artist, title) + strconv.Itoa(disc) + "/" + strconv.Itoa(number) + "/"
}

// ChoreographiesURL is the choreography collection.
func ChoreographiesURL() string { return "/api/choreographies/" }

// ChoreographyURL addresses a choreography by name.
func ChoreographyURL(name string) string { return ChoreographiesURL() + segment(name) }

// segment escapes key as one path segment. "+" is escaped as well since
// raw-path routing decodes path values with query unescaping.
func segment(key string) string {
	return strings.ReplaceAll(url.PathEscape(key), "+", "%2B") + "/"
}

// NewStadium returns a document carrying the stadium namespace.
func NewStadium(fields map[string]any) *Document {
	return New(fields).AddNamespace(NS, LinkRelationsURL)
}

// NewStadiumCollection returns a collection document carrying the stadium
// namespace and a self link.
func NewStadiumCollection(self string) *Document {
	d := NewCollection().AddNamespace(NS, LinkRelationsURL)
	return d.AddLink(RelSelf, self)
}

// NewItem returns a collection element with self and profile links.
func NewItem(fields map[string]any, self, profile string) *Document {
	return New(fields).AddLink(RelSelf, self).AddLink(RelProfile, profile)
}

// NewError returns an error document for the resource at resourceURL.
func NewError(resourceURL, title, details string) *Document {
	d := New(map[string]any{"resource_url": resourceURL})
	d.AddError(title, details)
	return d.AddLink(RelProfile, ErrorProfile)
}

func (d *Document) AddControlAllArtists() *Document {
	return d.AddControl(RelArtistsAll, ArtistsURL(), Control{
		Method:   http.MethodGet,
		Encoding: "json",
		Title:    "Get all artists",
	})
}

func (d *Document) AddControlAllAlbums() *Document {
	return d.AddControl(RelAlbumsAll, AlbumsURL(), Control{
		Method:   http.MethodGet,
		Encoding: "json",
		Title:    "Get all albums",
	})
}

func (d *Document) AddControlAllChoreographies() *Document {
	return d.AddControl(RelChoreographiesAll, ChoreographiesURL(), Control{
		Method:   http.MethodGet,
		Encoding: "json",
		Title:    "Get all choreographies",
	})
}

func (d *Document) AddControlAlbumsBy(uniqueName string) *Document {
	return d.AddControl(RelAlbumsBy, ArtistAlbumsURL(uniqueName), Control{
		Method:   http.MethodGet,
		Encoding: "json",
		Title:    "Albums by this artist",
	})
}

func (d *Document) AddControlAddArtist() *Document {
	return d.addPost(RelAddArtist, ArtistsURL(), "Add new artist", schemas.Artist)
}

// AddControlAddAlbum points at the collection of artist; an empty artist
// adds an album without an artist.
func (d *Document) AddControlAddAlbum(artist string) *Document {
	return d.addPost(RelAddAlbum, AlbumCollectionURL(artist), "Add new album", schemas.Album)
}

// AddControlAddTrack posts to the album, which is the track collection.
func (d *Document) AddControlAddTrack(artist, title string) *Document {
	return d.addPost(RelAddTrack, AlbumURL(artist, title), "Add new track", schemas.Track)
}

func (d *Document) AddControlAddChoreography() *Document {
	return d.addPost(RelAddChoreography, ChoreographiesURL(), "Add new choreography", schemas.Choreography)
}

// AddControlEdit adds the PUT control of an item of the given kind.
func (d *Document) AddControlEdit(href string, kind schemas.Kind) *Document {
	return d.AddControl(RelEdit, href, Control{
		Method:   http.MethodPut,
		Encoding: "json",
		Title:    "edit " + string(kind),
		Schema:   schemas.For(kind),
	})
}

// AddControlDelete adds the DELETE control of an item of the given kind.
func (d *Document) AddControlDelete(href string, kind schemas.Kind) *Document {
	return d.AddControl(RelDelete, href, Control{
		Method: http.MethodDelete,
		Title:  "delete this " + string(kind),
	})
}

func (d *Document) addPost(rel, href, title string, kind schemas.Kind) *Document {
	return d.AddControl(rel, href, Control{
		Method:   http.MethodPost,
		Encoding: "json",
		Title:    title,
		Schema:   schemas.For(kind),
	})
}
