package mock

import (
	"sort"
	"strings"
	"sync"

	"blogify/app/models"
	"blogify/app/repositories"
)

type UserRepository struct {
	users  map[int]*models.User
	nextID int
	mutex  sync.RWMutex
}

type PostRepository struct {
	posts  map[int]*models.Post
	nextID int
	mutex  sync.RWMutex
}

type CommentRepository struct {
	comments map[int]*models.Comment
	nextID   int
	mutex    sync.RWMutex
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		users:  make(map[int]*models.User),
		nextID: 1,
	}
}

func NewPostRepository() *PostRepository {
	return &PostRepository{
		posts:  make(map[int]*models.Post),
		nextID: 1,
	}
}

func NewCommentRepository() *CommentRepository {
	return &CommentRepository{
		comments: make(map[int]*models.Comment),
		nextID:   1,
	}
}

// UserRepository implementation

func (m *UserRepository) Create(user *models.User) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for _, existing := range m.users {
		if strings.EqualFold(existing.Email, user.Email) ||
			strings.EqualFold(existing.Username, user.Username) {
			return repositories.ErrDuplicate
		}
	}

	user.ID = m.nextID
	m.nextID++
	user.BeforeCreate()
	m.users[user.ID] = user
	return nil
}

func (m *UserRepository) GetByID(id int) (*models.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	user, exists := m.users[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return user, nil
}

func (m *UserRepository) GetByEmail(email string) (*models.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for _, user := range m.users {
		if strings.EqualFold(user.Email, email) {
			return user, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *UserRepository) Update(user *models.User) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.users[user.ID]; !exists {
		return repositories.ErrNotFound
	}
	m.users[user.ID] = user
	return nil
}

// PostRepository implementation

func (m *PostRepository) Create(post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for _, existing := range m.posts {
		if existing.Slug == post.Slug {
			return repositories.ErrSlugTaken
		}
	}

	post.ID = m.nextID
	m.nextID++
	post.BeforeCreate()
	m.posts[post.ID] = post
	return nil
}

func (m *PostRepository) GetByID(id int) (*models.Post, error) {
	post, err := m.GetAnyByID(id)
	if err != nil {
		return nil, err
	}
	if post.IsDeleted {
		return nil, repositories.ErrNotFound
	}
	return post, nil
}

func (m *PostRepository) GetAnyByID(id int) (*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	post, exists := m.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return post, nil
}

func (m *PostRepository) GetBySlug(slug string) (*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for _, post := range m.posts {
		if post.Slug == slug && !post.IsDeleted {
			return post, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *PostRepository) List(filter repositories.PostFilter) ([]*models.Post, int, error) {
	m.mutex.RLock()
	var matches []*models.Post
	for id := 1; id < m.nextID; id++ {
		post, exists := m.posts[id]
		if !exists || post.IsDeleted {
			continue
		}
		if filter.Status != "" && post.Status != filter.Status {
			continue
		}
		if filter.AuthorID != 0 && post.AuthorID != filter.AuthorID {
			continue
		}
		if filter.Featured != nil && post.Featured != *filter.Featured {
			continue
		}
		if filter.MinLikes > 0 && len(post.Likes) < filter.MinLikes {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(post.Title), needle) &&
				!strings.Contains(strings.ToLower(post.Content), needle) {
				continue
			}
		}
		if len(filter.Tags) > 0 {
			found := false
			for _, w := range filter.Tags {
				for _, t := range post.Tags {
					if strings.EqualFold(t, w) {
						found = true
					}
				}
			}
			if !found {
				continue
			}
		}
		matches = append(matches, post)
	}
	m.mutex.RUnlock()

	switch filter.Sort {
	case "createdAt":
		sort.SliceStable(matches, func(i, j int) bool {
			return matches[i].CreatedAt.Before(matches[j].CreatedAt)
		})
	case "-likes":
		sort.SliceStable(matches, func(i, j int) bool {
			return len(matches[i].Likes) > len(matches[j].Likes)
		})
	default:
		sort.SliceStable(matches, func(i, j int) bool {
			return matches[i].CreatedAt.After(matches[j].CreatedAt)
		})
	}

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

func (m *PostRepository) Update(post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.posts[post.ID]; !exists {
		return repositories.ErrNotFound
	}
	for id, existing := range m.posts {
		if id != post.ID && existing.Slug == post.Slug {
			return repositories.ErrSlugTaken
		}
	}
	m.posts[post.ID] = post
	return nil
}

func (m *PostRepository) CountSlugMatches(base string) (int, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	count := 0
	for _, post := range m.posts {
		if post.Slug == base || strings.HasPrefix(post.Slug, base+"-") && isNumericSuffix(post.Slug[len(base)+1:]) {
			count++
		}
	}
	return count, nil
}

func isNumericSuffix(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// CommentRepository implementation

func (m *CommentRepository) Create(comment *models.Comment) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	comment.ID = m.nextID
	m.nextID++
	comment.BeforeCreate()
	m.comments[comment.ID] = comment
	return nil
}

func (m *CommentRepository) GetByID(id int) (*models.Comment, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	comment, exists := m.comments[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return comment, nil
}

func (m *CommentRepository) ListByPost(postID int) ([]*models.Comment, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var comments []*models.Comment
	for id := 1; id < m.nextID; id++ {
		if comment, exists := m.comments[id]; exists && comment.PostID == postID {
			comments = append(comments, comment)
		}
	}
	return comments, nil
}

func (m *CommentRepository) Delete(id int) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.comments[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.comments, id)
	return nil
}
