package services

import "blogify/app/models"

// BuildCommentTree converts a flat list of comments into a rooted forest.
// The first pass indexes every comment by ID; the second attaches each
// comment to its parent's replies list, or to the roots when it has no
// parent. A comment whose parent is absent from the input set is promoted
// to a root.
//
// The build is O(n) and stable: sibling order (and root order) follows
// input order, so callers wanting chronological output must pass the list
// pre-sorted by creation time ascending.
func BuildCommentTree(comments []*models.Comment) []*models.CommentNode {
	index := make(map[int]*models.CommentNode, len(comments))
	nodes := make([]*models.CommentNode, 0, len(comments))
	for _, comment := range comments {
		node := &models.CommentNode{Comment: comment, Replies: []*models.CommentNode{}}
		index[comment.ID] = node
		nodes = append(nodes, node)
	}

	roots := []*models.CommentNode{}
	for _, node := range nodes {
		if node.ParentID != nil {
			if parent, ok := index[*node.ParentID]; ok {
				parent.Replies = append(parent.Replies, node)
				continue
			}
		}
		roots = append(roots, node)
	}
	return roots
}
