package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCommentValidation(t *testing.T) {
	tests := []struct {
		name    string
		comment *Comment
		wantErr bool
	}{
		{
			name: "valid root comment",
			comment: &Comment{
				ID:        1,
				PostID:    1,
				AuthorID:  1,
				Text:      "Nice post!",
				CreatedAt: time.Now(),
			},
			wantErr: false,
		},
		{
			name: "missing post reference",
			comment: &Comment{
				ID:        1,
				AuthorID:  1,
				Text:      "Nice post!",
				CreatedAt: time.Now(),
			},
			wantErr: true,
		},
		{
			name: "empty text",
			comment: &Comment{
				ID:        1,
				PostID:    1,
				AuthorID:  1,
				Text:      "",
				CreatedAt: time.Now(),
			},
			wantErr: true,
		},
		{
			name: "zero creation time",
			comment: &Comment{
				ID:       1,
				PostID:   1,
				AuthorID: 1,
				Text:     "Nice post!",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.comment.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCommentIsRoot(t *testing.T) {
	parentID := 3
	root := &Comment{ID: 1, PostID: 1, Text: "root"}
	reply := &Comment{ID: 2, PostID: 1, Text: "reply", ParentID: &parentID}

	assert.True(t, root.IsRoot())
	assert.False(t, reply.IsRoot())
}
