package board

import "bulletin/internal/models"

// visibleView applies the depth-first visibility filter to a post: a Removed
// post disappears entirely, a visible post keeps only its visible comments,
// and each kept comment only its visible sub-comments. The stored record is
// never modified; the filter produces a fresh value for the caller.
func visibleView(p *models.Post) (*models.Post, bool) {
	if !p.Status.Visible() {
		return nil, false
	}

	out := *p
	out.Tags = append([]string(nil), p.Tags...)
	out.LikedBy = append([]models.AccountID(nil), p.LikedBy...)
	out.Comments = make([]models.Comment, 0, len(p.Comments))

	for _, c := range p.Comments {
		if !c.Status.Visible() {
			continue
		}
		kept := c
		kept.LikedBy = append([]models.AccountID(nil), c.LikedBy...)
		kept.SubComments = make([]models.SubComment, 0, len(c.SubComments))
		for _, sc := range c.SubComments {
			if !sc.Status.Visible() {
				continue
			}
			keptSub := sc
			keptSub.LikedBy = append([]models.AccountID(nil), sc.LikedBy...)
			kept.SubComments = append(kept.SubComments, keptSub)
		}
		out.Comments = append(out.Comments, kept)
	}

	return &out, true
}
