package services

import (
	"testing"
	"time"

	"blogify/app/models"

	"github.com/stretchr/testify/assert"
)

func flatComment(id int, parentID *int, at time.Time) *models.Comment {
	return &models.Comment{
		ID:        id,
		PostID:    1,
		AuthorID:  1,
		ParentID:  parentID,
		Text:      "text",
		CreatedAt: at,
	}
}

func countNodes(forest []*models.CommentNode) int {
	total := 0
	for _, node := range forest {
		total += 1 + countNodes(node.Replies)
	}
	return total
}

func TestBuildCommentTree(t *testing.T) {
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	p1 := 1
	p2 := 2

	t.Run("nests replies under their parents", func(t *testing.T) {
		comments := []*models.Comment{
			flatComment(1, nil, base),
			flatComment(2, &p1, base.Add(time.Minute)),
			flatComment(3, &p2, base.Add(2*time.Minute)),
			flatComment(4, nil, base.Add(3*time.Minute)),
		}

		forest := BuildCommentTree(comments)

		assert.Len(t, forest, 2)
		assert.Equal(t, 1, forest[0].ID)
		assert.Equal(t, 4, forest[1].ID)
		assert.Len(t, forest[0].Replies, 1)
		assert.Equal(t, 2, forest[0].Replies[0].ID)
		assert.Len(t, forest[0].Replies[0].Replies, 1)
		assert.Equal(t, 3, forest[0].Replies[0].Replies[0].ID)
	})

	t.Run("preserves total node count", func(t *testing.T) {
		comments := []*models.Comment{
			flatComment(1, nil, base),
			flatComment(2, &p1, base.Add(time.Minute)),
			flatComment(3, &p1, base.Add(2*time.Minute)),
			flatComment(4, &p2, base.Add(3*time.Minute)),
			flatComment(5, nil, base.Add(4*time.Minute)),
		}

		forest := BuildCommentTree(comments)
		assert.Equal(t, len(comments), countNodes(forest))
	})

	t.Run("sibling order follows input order", func(t *testing.T) {
		comments := []*models.Comment{
			flatComment(10, &p1, base),
			flatComment(1, nil, base),
			flatComment(7, &p1, base),
			flatComment(3, &p1, base),
		}

		forest := BuildCommentTree(comments)

		assert.Len(t, forest, 1)
		ids := []int{}
		for _, reply := range forest[0].Replies {
			ids = append(ids, reply.ID)
		}
		assert.Equal(t, []int{10, 7, 3}, ids)
	})

	t.Run("promotes orphans to roots", func(t *testing.T) {
		missing := 99
		comments := []*models.Comment{
			flatComment(1, nil, base),
			flatComment(2, &missing, base.Add(time.Minute)),
		}

		forest := BuildCommentTree(comments)

		assert.Len(t, forest, 2)
		assert.Equal(t, 2, forest[1].ID)
		assert.Empty(t, forest[1].Replies)
	})

	t.Run("empty input yields empty forest", func(t *testing.T) {
		forest := BuildCommentTree(nil)
		assert.NotNil(t, forest)
		assert.Empty(t, forest)
	})
}
