package services

import (
	"sort"
	"time"

	"gorm.io/gorm"

	"company-board-api/config"
	"company-board-api/models"
)

// SearchService delegates ranking to MySQL natural-language full-text
// search; the service only pages and merges.
type SearchService struct {
	db *gorm.DB
}

// NewSearchService constructs a SearchService.
func NewSearchService(db *gorm.DB) *SearchService {
	if db == nil {
		db = config.DB
	}
	return &SearchService{db: db}
}

type AnnouncementHit struct {
	ID        int                     `gorm:"column:id" json:"id"`
	Title     string                  `gorm:"column:title" json:"title"`
	Content   string                  `gorm:"column:content" json:"content"`
	Type      models.AnnouncementType `gorm:"column:type" json:"type"`
	CreateAt  time.Time               `gorm:"column:create_at" json:"created_at"`
	UpdateAt  *time.Time              `gorm:"column:update_at" json:"updated_at,omitempty"`
	Relevance float64                 `gorm:"column:relevance" json:"relevance"`
}

type ResponseHit struct {
	ID                int        `gorm:"column:id" json:"id"`
	AnnouncementID    int        `gorm:"column:announcement_id" json:"announcement_id"`
	AnnouncementTitle *string    `gorm:"column:announcement_title" json:"announcement_title"`
	ColleagueName     string     `gorm:"column:colleague_name" json:"colleague_name"`
	Content           string     `gorm:"column:content" json:"content"`
	FileKey           *string    `gorm:"column:file_key" json:"file_key,omitempty"`
	FileName          *string    `gorm:"column:file_name" json:"file_name,omitempty"`
	CreateAt          time.Time  `gorm:"column:create_at" json:"created_at"`
	Relevance         float64    `gorm:"column:relevance" json:"relevance"`
}

// CombinedHit tags each row with its source so the merged listing can be
// rendered without a second lookup.
type CombinedHit struct {
	SourceType        string    `json:"type"` // announcement|response
	ID                int       `json:"id"`
	DisplayTitle      *string   `json:"display_title"`
	DisplayContent    string    `json:"display_content"`
	AnnouncementTitle *string   `json:"announcement_title"`
	CreateAt          time.Time `json:"created_at"`
	Relevance         float64   `json:"relevance"`
}

const announcementSearchSQL = `
SELECT
    announcement_id AS id,
    title,
    content,
    type,
    create_at,
    update_at,
    MATCH(title, content) AGAINST (? IN NATURAL LANGUAGE MODE) AS relevance
FROM announcements
WHERE MATCH(title, content) AGAINST (? IN NATURAL LANGUAGE MODE)
ORDER BY relevance DESC
LIMIT ? OFFSET ?`

const responseSearchSQL = `
SELECT
    r.response_id AS id,
    r.announcement_id,
    a.title AS announcement_title,
    r.colleague_name,
    r.content,
    r.file_key,
    r.file_name,
    r.create_at,
    MATCH(r.colleague_name, r.content) AGAINST (? IN NATURAL LANGUAGE MODE) AS relevance
FROM responses r
LEFT JOIN announcements a ON r.announcement_id = a.announcement_id
WHERE MATCH(r.colleague_name, r.content) AGAINST (? IN NATURAL LANGUAGE MODE)
ORDER BY relevance DESC
LIMIT ? OFFSET ?`

// Announcements runs a full-text search over announcement titles and bodies.
func (s *SearchService) Announcements(query string, skip, limit int) ([]AnnouncementHit, error) {
	hits := []AnnouncementHit{}
	err := s.db.Raw(announcementSearchSQL, query, query, limit, skip).Scan(&hits).Error
	return hits, err
}

// Responses runs a full-text search over responses, joined with the parent
// announcement title.
func (s *SearchService) Responses(query string, skip, limit int) ([]ResponseHit, error) {
	hits := []ResponseHit{}
	err := s.db.Raw(responseSearchSQL, query, query, limit, skip).Scan(&hits).Error
	return hits, err
}

// All searches both tables independently, then merges and re-sorts by
// relevance descending. Ties have no defined order.
func (s *SearchService) All(query string, skip, limit int) ([]CombinedHit, error) {
	announcements, err := s.Announcements(query, skip, limit)
	if err != nil {
		return nil, err
	}
	responses, err := s.Responses(query, skip, limit)
	if err != nil {
		return nil, err
	}

	merged := make([]CombinedHit, 0, len(announcements)+len(responses))
	for _, a := range announcements {
		title := a.Title
		merged = append(merged, CombinedHit{
			SourceType:     "announcement",
			ID:             a.ID,
			DisplayTitle:   &title,
			DisplayContent: a.Content,
			CreateAt:       a.CreateAt,
			Relevance:      a.Relevance,
		})
	}
	for _, r := range responses {
		merged = append(merged, CombinedHit{
			SourceType:        "response",
			ID:                r.ID,
			DisplayTitle:      r.AnnouncementTitle,
			DisplayContent:    r.Content,
			AnnouncementTitle: r.AnnouncementTitle,
			CreateAt:          r.CreateAt,
			Relevance:         r.Relevance,
		})
	}

	sort.Slice(merged, func(i, j int) bool {
		return merged[i].Relevance > merged[j].Relevance
	})
	return merged, nil
}
