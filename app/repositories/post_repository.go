package repositories

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"blogify/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerPostRepository implements PostRepository using BadgerDB
type BadgerPostRepository struct {
	db *badger.DB
}

// NewBadgerPostRepository creates a new BadgerPostRepository
func NewBadgerPostRepository(db *badger.DB) *BadgerPostRepository {
	return &BadgerPostRepository{db: db}
}

func postSlugKey(slug string) []byte {
	return []byte(PostSlugIndexPrefix + slug)
}

// Create creates a new post. Slug uniqueness is enforced by an index key
// written in the same transaction; a clash returns ErrSlugTaken so the
// caller can regenerate the suffix and retry.
func (r *BadgerPostRepository) Create(post *models.Post) error {
	return r.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(postSlugKey(post.Slug)); err == nil {
			return ErrSlugTaken
		} else if err != badger.ErrKeyNotFound {
			return err
		}

		// Get next ID
		id, err := getNextID(txn, PostSeqKey)
		if err != nil {
			return err
		}
		post.ID = id
		post.BeforeCreate()

		// Marshal post
		data, err := marshalEntity(post)
		if err != nil {
			return err
		}

		// Save post and slug index atomically
		key := []byte(fmt.Sprintf("%s%d", PostKeyPrefix, post.ID))
		if err := txn.Set(key, data); err != nil {
			return err
		}
		return txn.Set(postSlugKey(post.Slug), encodeID(post.ID))
	})
}

// GetByID retrieves a post by ID, excluding soft-deleted posts
func (r *BadgerPostRepository) GetByID(id int) (*models.Post, error) {
	post, err := r.GetAnyByID(id)
	if err != nil {
		return nil, err
	}
	if post.IsDeleted {
		return nil, ErrNotFound
	}
	return post, nil
}

// GetAnyByID retrieves a post by ID regardless of its soft-delete flag.
// This is the audit path; handlers never expose it directly.
func (r *BadgerPostRepository) GetAnyByID(id int) (*models.Post, error) {
	var post models.Post

	err := r.db.View(func(txn *badger.Txn) error {
		key := []byte(fmt.Sprintf("%s%d", PostKeyPrefix, id))
		item, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &post)
		})
	})

	if err != nil {
		return nil, err
	}
	return &post, nil
}

// GetBySlug retrieves a post by slug via the unique index, excluding
// soft-deleted posts
func (r *BadgerPostRepository) GetBySlug(slug string) (*models.Post, error) {
	var id int
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		id, err = indexLookup(txn, PostSlugIndexPrefix+slug)
		return err
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(id)
}

// List retrieves posts matching the filter, ordered and paginated. It
// returns the page of posts plus the total match count before pagination.
// Soft-deleted posts are always excluded.
func (r *BadgerPostRepository) List(filter PostFilter) ([]*models.Post, int, error) {
	var matches []*models.Post

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(PostKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var post models.Post
			err := item.Value(func(val []byte) error {
				return unmarshalEntity(val, &post)
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal post: %v", err)
			}
			if matchesFilter(&post, filter) {
				p := post
				matches = append(matches, &p)
			}
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	sortPosts(matches, filter.Sort)
	total := len(matches)

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit
	if offset >= total {
		return []*models.Post{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matches[offset:end], total, nil
}

func matchesFilter(post *models.Post, filter PostFilter) bool {
	if post.IsDeleted {
		return false
	}
	if filter.Status != "" && post.Status != filter.Status {
		return false
	}
	if filter.AuthorID != 0 && post.AuthorID != filter.AuthorID {
		return false
	}
	if filter.Featured != nil && post.Featured != *filter.Featured {
		return false
	}
	if len(filter.Tags) > 0 && !hasAnyTag(post.Tags, filter.Tags) {
		return false
	}
	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(post.Title), needle) &&
			!strings.Contains(strings.ToLower(post.Content), needle) {
			return false
		}
	}
	if filter.StartDate != nil && post.CreatedAt.Before(*filter.StartDate) {
		return false
	}
	if filter.EndDate != nil && post.CreatedAt.After(*filter.EndDate) {
		return false
	}
	if filter.MinLikes > 0 && len(post.Likes) < filter.MinLikes {
		return false
	}
	return true
}

func hasAnyTag(postTags, wanted []string) bool {
	for _, w := range wanted {
		for _, t := range postTags {
			if strings.EqualFold(t, w) {
				return true
			}
		}
	}
	return false
}

// sortPosts orders posts in place. Supported keys: createdAt, -createdAt
// (default), likes, -likes. Ties fall back to newest first.
func sortPosts(posts []*models.Post, key string) {
	switch key {
	case "createdAt":
		sort.SliceStable(posts, func(i, j int) bool {
			return posts[i].CreatedAt.Before(posts[j].CreatedAt)
		})
	case "likes":
		sort.SliceStable(posts, func(i, j int) bool {
			return len(posts[i].Likes) < len(posts[j].Likes)
		})
	case "-likes":
		sort.SliceStable(posts, func(i, j int) bool {
			if len(posts[i].Likes) != len(posts[j].Likes) {
				return len(posts[i].Likes) > len(posts[j].Likes)
			}
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		})
	default: // "-createdAt"
		sort.SliceStable(posts, func(i, j int) bool {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		})
	}
}

// Update updates an existing post, keeping the slug index in step when the
// slug changed. A new slug clashing with another post's returns ErrSlugTaken.
func (r *BadgerPostRepository) Update(post *models.Post) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := []byte(fmt.Sprintf("%s%d", PostKeyPrefix, post.ID))

		// Verify post exists and grab its stored slug
		item, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		var existing models.Post
		if err := item.Value(func(val []byte) error {
			return unmarshalEntity(val, &existing)
		}); err != nil {
			return err
		}

		if existing.Slug != post.Slug {
			if _, err := txn.Get(postSlugKey(post.Slug)); err == nil {
				return ErrSlugTaken
			} else if err != badger.ErrKeyNotFound {
				return err
			}
			if err := txn.Delete(postSlugKey(existing.Slug)); err != nil {
				return err
			}
			if err := txn.Set(postSlugKey(post.Slug), encodeID(post.ID)); err != nil {
				return err
			}
		}

		// Marshal and save updated post
		data, err := marshalEntity(post)
		if err != nil {
			return err
		}
		return txn.Set(key, data)
	})
}

// CountSlugMatches counts live and deleted posts whose slug is the base form
// or the base form with a numeric suffix. The count feeds suffix derivation.
func (r *BadgerPostRepository) CountSlugMatches(base string) (int, error) {
	pattern, err := regexp.Compile("^" + regexp.QuoteMeta(base) + "(-[0-9]+)?$")
	if err != nil {
		return 0, err
	}

	count := 0
	err = r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(PostSlugIndexPrefix + base)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			slug := strings.TrimPrefix(string(it.Item().Key()), PostSlugIndexPrefix)
			if pattern.MatchString(slug) {
				count++
			}
		}
		return nil
	})
	return count, err
}
