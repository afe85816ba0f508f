// internal/database/memory.go
package database

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/HY-spring-study/OJT-jinsoo/internal/models"
	"github.com/HY-spring-study/OJT-jinsoo/internal/utils"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory Store used by tests. It mirrors the error
// semantics of PostgresDB, including the duplicate-username and duplicate
// (post, member) recommendation guards that the SQL unique constraints
// provide.
type MemoryStore struct {
	mu              sync.RWMutex
	members         map[uuid.UUID]*models.Member
	boards          map[uuid.UUID]*models.Board
	posts           map[uuid.UUID]*models.Post
	recommendations map[uuid.UUID]*models.PostRecommendation
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		members:         make(map[uuid.UUID]*models.Member),
		boards:          make(map[uuid.UUID]*models.Board),
		posts:           make(map[uuid.UUID]*models.Post),
		recommendations: make(map[uuid.UUID]*models.PostRecommendation),
	}
}

func (m *MemoryStore) Close(ctx context.Context) error {
	return nil
}

// GetMemberByID fetches a member by their ID.
func (m *MemoryStore) GetMemberByID(ctx context.Context, id uuid.UUID) (*models.Member, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	member, ok := m.members[id]
	if !ok {
		return nil, utils.NewMemberNotFoundError("id " + id.String())
	}
	copied := *member
	return &copied, nil
}

// GetMemberByUsername fetches a member by their exact username.
func (m *MemoryStore) GetMemberByUsername(ctx context.Context, username string) (*models.Member, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, member := range m.members {
		if member.Username == username {
			copied := *member
			return &copied, nil
		}
	}
	return nil, utils.NewMemberNotFoundError("username " + username)
}

// SearchMembersByUsername fetches members whose username contains the
// keyword.
func (m *MemoryStore) SearchMembersByUsername(ctx context.Context, keyword string) ([]*models.Member, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	members := []*models.Member{}
	for _, member := range m.members {
		if strings.Contains(member.Username, keyword) {
			copied := *member
			members = append(members, &copied)
		}
	}
	sort.Slice(members, func(i, j int) bool {
		return members[i].Username < members[j].Username
	})
	return members, nil
}

// MemberExists reports whether a member with the given ID exists.
func (m *MemoryStore) MemberExists(ctx context.Context, id uuid.UUID) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.members[id]
	return ok, nil
}

// SaveMember inserts or updates a member, rejecting a username already
// taken by a different member.
func (m *MemoryStore) SaveMember(ctx context.Context, member *models.Member) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.members {
		if existing.Username == member.Username && existing.ID != member.ID {
			return utils.NewAppError(utils.ErrMemberAlreadyExists, "Already existing member with username: "+member.Username, nil)
		}
	}

	stampTimestamps(&member.Entity)
	copied := *member
	m.members[member.ID] = &copied
	return nil
}

// DeleteMember deletes a member by ID.
func (m *MemoryStore) DeleteMember(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.members[id]; !ok {
		return utils.NewMemberNotFoundError("id " + id.String())
	}
	delete(m.members, id)
	return nil
}

// GetAllBoards fetches all board records.
func (m *MemoryStore) GetAllBoards(ctx context.Context) ([]*models.Board, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	boards := []*models.Board{}
	for _, board := range m.boards {
		copied := *board
		boards = append(boards, &copied)
	}
	sort.Slice(boards, func(i, j int) bool {
		return boards[i].CreatedAt.Before(boards[j].CreatedAt)
	})
	return boards, nil
}

// GetBoardByCode fetches a board by its exact code.
func (m *MemoryStore) GetBoardByCode(ctx context.Context, code string) (*models.Board, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, board := range m.boards {
		if board.Code == code {
			copied := *board
			return &copied, nil
		}
	}
	return nil, utils.NewBoardNotFoundError("code " + code)
}

// GetBoardByName fetches a board by its exact name.
func (m *MemoryStore) GetBoardByName(ctx context.Context, name string) (*models.Board, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, board := range m.boards {
		if board.Name == name {
			copied := *board
			return &copied, nil
		}
	}
	return nil, utils.NewBoardNotFoundError("name " + name)
}

// SearchBoardsByName fetches boards whose name contains the keyword.
func (m *MemoryStore) SearchBoardsByName(ctx context.Context, keyword string) ([]*models.Board, error) {
	return m.searchBoards(func(b *models.Board) string { return b.Name }, keyword)
}

// SearchBoardsByCode fetches boards whose code contains the keyword.
func (m *MemoryStore) SearchBoardsByCode(ctx context.Context, keyword string) ([]*models.Board, error) {
	return m.searchBoards(func(b *models.Board) string { return b.Code }, keyword)
}

// SearchBoardsByDescription fetches boards whose description contains the keyword.
func (m *MemoryStore) SearchBoardsByDescription(ctx context.Context, keyword string) ([]*models.Board, error) {
	return m.searchBoards(func(b *models.Board) string { return b.Description }, keyword)
}

func (m *MemoryStore) searchBoards(field func(*models.Board) string, keyword string) ([]*models.Board, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	boards := []*models.Board{}
	for _, board := range m.boards {
		if strings.Contains(field(board), keyword) {
			copied := *board
			boards = append(boards, &copied)
		}
	}
	sort.Slice(boards, func(i, j int) bool {
		return boards[i].CreatedAt.Before(boards[j].CreatedAt)
	})
	return boards, nil
}

// CreateBoard inserts a new board record.
func (m *MemoryStore) CreateBoard(ctx context.Context, board *models.Board) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.boards {
		if existing.Code == board.Code || existing.Name == board.Name {
			return utils.NewAppError(utils.ErrDuplicate, "board already exists: "+board.Code, nil)
		}
	}

	stampTimestamps(&board.Entity)
	copied := *board
	m.boards[board.ID] = &copied
	return nil
}

// CountBoards returns the number of board records.
func (m *MemoryStore) CountBoards(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.boards), nil
}

// GetPost fetches a post by its ID.
func (m *MemoryStore) GetPost(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	post, ok := m.posts[id]
	if !ok {
		return nil, utils.NewPostNotFoundError(id)
	}
	return m.decoratePost(post), nil
}

// decoratePost copies a post and fills the author username and board code
// the way the SQL joins do. Callers must hold the read lock.
func (m *MemoryStore) decoratePost(post *models.Post) *models.Post {
	copied := *post
	copied.Recommendations = nil
	if member, ok := m.members[post.AuthorID]; ok {
		copied.AuthorUsername = member.Username
	}
	if board, ok := m.boards[post.BoardID]; ok {
		copied.BoardCode = board.Code
	}
	return &copied
}

func (m *MemoryStore) selectPosts(match func(*models.Post) bool) []*models.Post {
	posts := []*models.Post{}
	for _, post := range m.posts {
		if match(post) {
			posts = append(posts, m.decoratePost(post))
		}
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts
}

// SearchPostsByTitle fetches posts whose title contains the keyword.
func (m *MemoryStore) SearchPostsByTitle(ctx context.Context, keyword string) ([]*models.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.selectPosts(func(p *models.Post) bool {
		return strings.Contains(p.Title, keyword)
	}), nil
}

// SearchPostsByContent fetches posts whose content contains the keyword.
func (m *MemoryStore) SearchPostsByContent(ctx context.Context, keyword string) ([]*models.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.selectPosts(func(p *models.Post) bool {
		return strings.Contains(p.Content, keyword)
	}), nil
}

// SearchPostsByAuthorUsername fetches posts whose author's username
// contains the keyword.
func (m *MemoryStore) SearchPostsByAuthorUsername(ctx context.Context, keyword string) ([]*models.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.selectPosts(func(p *models.Post) bool {
		member, ok := m.members[p.AuthorID]
		return ok && strings.Contains(member.Username, keyword)
	}), nil
}

// GetPostsByBoardCode fetches the posts of one board in the requested
// order.
func (m *MemoryStore) GetPostsByBoardCode(ctx context.Context, code string, order models.PostOrder) ([]*models.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	posts := m.selectPosts(func(p *models.Post) bool {
		board, ok := m.boards[p.BoardID]
		return ok && board.Code == code
	})

	switch order {
	case models.OrderOldest:
		sort.Slice(posts, func(i, j int) bool {
			return posts[i].CreatedAt.Before(posts[j].CreatedAt)
		})
	case models.OrderMostViewed:
		sort.Slice(posts, func(i, j int) bool {
			return posts[i].ViewCount > posts[j].ViewCount
		})
	case models.OrderMostRecommends:
		counts := make(map[uuid.UUID]int)
		for _, rec := range m.recommendations {
			counts[rec.PostID]++
		}
		sort.Slice(posts, func(i, j int) bool {
			return counts[posts[i].ID] > counts[posts[j].ID]
		})
	}
	return posts, nil
}

// GetPostsByAuthor fetches a member's posts, newest first.
func (m *MemoryStore) GetPostsByAuthor(ctx context.Context, username string) ([]*models.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.selectPosts(func(p *models.Post) bool {
		member, ok := m.members[p.AuthorID]
		return ok && member.Username == username
	}), nil
}

// GetPostsCreatedBetween fetches posts created within [start, end].
func (m *MemoryStore) GetPostsCreatedBetween(ctx context.Context, start, end time.Time) ([]*models.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.selectPosts(func(p *models.Post) bool {
		return !p.CreatedAt.Before(start) && !p.CreatedAt.After(end)
	}), nil
}

// PostExists reports whether a post with the given ID exists.
func (m *MemoryStore) PostExists(ctx context.Context, id uuid.UUID) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.posts[id]
	return ok, nil
}

// SavePost inserts or updates a post and persists any pending
// recommendations, rejecting a duplicate (post, member) pair.
func (m *MemoryStore) SavePost(ctx context.Context, post *models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stampTimestamps(&post.Entity)

	stored, exists := m.posts[post.ID]
	if exists {
		// On update only title, content and the timestamp move.
		stored.Title = post.Title
		stored.Content = post.Content
		stored.UpdatedAt = post.UpdatedAt
	} else {
		copied := *post
		copied.Recommendations = nil
		m.posts[post.ID] = &copied
	}

	for _, rec := range post.Recommendations {
		for _, existing := range m.recommendations {
			if existing.PostID == rec.PostID && existing.MemberID == rec.MemberID {
				return utils.NewAlreadyRecommendedError(rec.PostID, rec.MemberID)
			}
		}
		copied := *rec
		copied.CreatedAt = time.Now()
		m.recommendations[rec.ID] = &copied
	}

	post.Recommendations = nil
	return nil
}

// DeletePost deletes a post and its recommendations.
func (m *MemoryStore) DeletePost(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.posts[id]; !ok {
		return utils.NewPostNotFoundError(id)
	}
	delete(m.posts, id)
	for recID, rec := range m.recommendations {
		if rec.PostID == id {
			delete(m.recommendations, recID)
		}
	}
	return nil
}

// IncrementPostViewCount bumps a post's view count by exactly one and
// returns the new value.
func (m *MemoryStore) IncrementPostViewCount(ctx context.Context, id uuid.UUID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	post, ok := m.posts[id]
	if !ok {
		return 0, utils.NewPostNotFoundError(id)
	}
	post.IncrementViewCount()
	return post.ViewCount, nil
}

// CountPosts returns the number of post records.
func (m *MemoryStore) CountPosts(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.posts), nil
}

// RecommendationExists reports whether the member has already recommended
// the post.
func (m *MemoryStore) RecommendationExists(ctx context.Context, postID, memberID uuid.UUID) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, rec := range m.recommendations {
		if rec.PostID == postID && rec.MemberID == memberID {
			return true, nil
		}
	}
	return false, nil
}

// CountRecommendations returns the number of recommendations stored for a
// post.
func (m *MemoryStore) CountRecommendations(ctx context.Context, postID uuid.UUID) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, rec := range m.recommendations {
		if rec.PostID == postID {
			count++
		}
	}
	return count, nil
}
