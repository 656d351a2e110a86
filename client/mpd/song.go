package mpd

// Song is the result of the "currentsong" command.
type Song struct {
	File         string
	LastModified string
	Artist       string
	Title        string
	Album        string
	Track        int
	Date         string
	Genre        string
	Time         int // whole seconds
	Duration     float64
	Pos          int
	ID           int
}

// Tag names are case sensitive, as sent by the server.
var songFields = map[string]func(*Song, string) error{
	"file":          func(s *Song, v string) error { s.File = v; return nil },
	"Last-Modified": func(s *Song, v string) error { s.LastModified = v; return nil },
	"Artist":        func(s *Song, v string) error { s.Artist = v; return nil },
	"Title":         func(s *Song, v string) error { s.Title = v; return nil },
	"Album":         func(s *Song, v string) error { s.Album = v; return nil },
	"Track":         func(s *Song, v string) error { return parseTrack(&s.Track, v) },
	"Date":          func(s *Song, v string) error { s.Date = v; return nil },
	"Genre":         func(s *Song, v string) error { s.Genre = v; return nil },
	"Time":          func(s *Song, v string) error { return parseInt(&s.Time, v) },
	"duration":      func(s *Song, v string) error { return parseFloat(&s.Duration, v) },
	"Pos":           func(s *Song, v string) error { return parseInt(&s.Pos, v) },
	"Id":            func(s *Song, v string) error { return parseInt(&s.ID, v) },
}

func parseSong(fields []Field) (Song, error) {
	var s Song
	for _, f := range fields {
		set, ok := songFields[f.Key]
		if !ok {
			continue
		}
		if err := set(&s, f.Value); err != nil {
			return Song{}, &Error{Kind: KindParse, Op: "currentsong " + f.Key, Err: err}
		}
	}
	return s, nil
}
