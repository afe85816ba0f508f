package models

import (
	"github.com/google/uuid"
)

// Post is a single article. Author and board are set once at creation and
// never reassigned; the view count changes only through IncrementViewCount.
type Post struct {
	Entity
	Title          string    `json:"title" db:"title"`
	Content        string    `json:"content" db:"content"`
	AuthorID       uuid.UUID `json:"authorId" db:"member_id"`
	AuthorUsername string    `json:"authorUsername,omitempty" db:"author_username"`
	BoardID        uuid.UUID `json:"boardId" db:"board_id"`
	BoardCode      string    `json:"boardCode,omitempty" db:"board_code"`
	ViewCount      int       `json:"viewCount" db:"view_count"`

	// Recommendations holds recommendations appended since the post was
	// loaded. Stored recommendations are not fetched eagerly; SavePost
	// persists whatever is pending here alongside the post.
	Recommendations []*PostRecommendation `json:"-"`
}

// NewPost builds a post for registration. Author and board are required at
// construction time.
func NewPost(title, content string, authorID, boardID uuid.UUID) *Post {
	return &Post{
		Entity:   NewEntity(),
		Title:    title,
		Content:  content,
		AuthorID: authorID,
		BoardID:  boardID,
	}
}

// IncrementViewCount bumps the view count by exactly one. Every detail view
// counts, including repeat views by the same member.
func (p *Post) IncrementViewCount() {
	p.ViewCount++
}

// AddRecommendation appends a recommendation to the post's pending
// collection so the next save persists it.
func (p *Post) AddRecommendation(rec *PostRecommendation) {
	p.Recommendations = append(p.Recommendations, rec)
}

// PostRecommendation records that one member recommended one post. The
// (post, member) pair is unique: a member may recommend a given post at
// most once. Rows are never updated and are removed with their post.
type PostRecommendation struct {
	Entity
	PostID   uuid.UUID `json:"postId" db:"post_id"`
	MemberID uuid.UUID `json:"memberId" db:"member_id"`
}

func NewPostRecommendation(postID, memberID uuid.UUID) *PostRecommendation {
	return &PostRecommendation{
		Entity:   NewEntity(),
		PostID:   postID,
		MemberID: memberID,
	}
}

// PostOrder selects the ordering of post listings.
type PostOrder string

const (
	OrderNewest         PostOrder = "newest"
	OrderOldest         PostOrder = "oldest"
	OrderMostViewed     PostOrder = "views"
	OrderMostRecommends PostOrder = "recommends"
)
