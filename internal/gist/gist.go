package gist

import (
	"fmt"
	"time"
)

type Visibility int

const (
	PublicVisibility Visibility = iota
	PrivateVisibility
)

func (v Visibility) String() string {
	switch v {
	case PublicVisibility:
		return "public"
	case PrivateVisibility:
		return "private"
	default:
		return "???"
	}
}

// ParseVisibility also accepts "secret", which is what GitHub calls
// private gists.
func ParseVisibility[T string | int](v T) (Visibility, error) {
	switch s := fmt.Sprint(v); s {
	case "0", "public":
		return PublicVisibility, nil
	case "1", "private", "secret":
		return PrivateVisibility, nil
	default:
		return -1, fmt.Errorf("unknown visibility %q", s)
	}
}

// Gist is a read-only snapshot of a gist as returned by the API.
// It is never mutated; a run either deletes the remote gist or leaves it.
type Gist struct {
	ID          string
	Description string
	Language    string
	Visibility  Visibility
	CreatedAt   time.Time
	Size        uint64
	NbFiles     int
	HTMLURL     string
}
