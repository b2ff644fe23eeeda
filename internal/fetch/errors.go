package fetch

import (
	"fmt"

	"github.com/abelbrown/hncli/internal/hn"
)

// FetchError reports a failed upstream read. Nothing is cached for a failed
// read, so asking again retries the remote call.
type FetchError struct {
	Op  string     // "item" or the list name
	ID  hn.StoryID // zero for list reads
	Err error
}

func (e *FetchError) Error() string {
	if e.ID != 0 {
		return fmt.Sprintf("fetch %s %d: %v", e.Op, e.ID, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
