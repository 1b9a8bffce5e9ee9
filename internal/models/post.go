package models

// AccountID identifies a caller. Identity resolution (who holds which
// account) is the host environment's concern; the board only compares IDs.
type AccountID string

// SubComment is the deepest nesting level. Owned exclusively by its parent
// comment and addressed positionally within it.
type SubComment struct {
	Creator AccountID   `json:"creator"`
	Content string      `json:"content"`
	LikedBy []AccountID `json:"liked_by"`
	Status  Status      `json:"status"`
}

// Comment is owned exclusively by its parent post. Sub-comments append in
// insertion order and are never physically deleted, only status-flipped, so
// positional indices stay valid for the lifetime of the post.
type Comment struct {
	Creator     AccountID    `json:"creator"`
	Content     string       `json:"content"`
	LikedBy     []AccountID  `json:"liked_by"`
	Status      Status       `json:"status"`
	SubComments []SubComment `json:"sub_comments"`
}

// Post is the top-level aggregate. The persistence layer addresses whole
// posts only; every nested write rewrites the full aggregate keyed by ID.
type Post struct {
	ID       uint64      `json:"id"`
	Title    string      `json:"title"`
	Content  string      `json:"content"`
	Tags     []string    `json:"tags"`
	LikedBy  []AccountID `json:"liked_by"`
	Creator  AccountID   `json:"creator"`
	Status   Status      `json:"status"`
	Comments []Comment   `json:"comments"`
}

// HasAllTags reports whether the post's own tag list contains every requested
// tag. Tag search is an AND match against this authoritative list, never
// against the secondary index.
func (p *Post) HasAllTags(tags []string) bool {
	for _, want := range tags {
		found := false
		for _, have := range p.Tags {
			if have == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
