package generation

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	vo "github.com/reelpop-inc/reelpop/internal/domain/generation/valueobjects"
)

// ProductDetails is the optional marketing copy attached to a project.
type ProductDetails struct {
	Name        string
	Price       string
	Catchphrase string
}

// Project groups the source photo and the video generated from it.
type Project struct {
	id        string
	userID    string
	template  vo.Template
	status    vo.ProjectStatus
	product   ProductDetails
	createdAt time.Time
	updatedAt time.Time
}

// NewProject starts a project already in the generating state.
func NewProject(userID string, template vo.Template, product ProductDetails) (*Project, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}
	if !template.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTemplate, template)
	}
	now := time.Now().UTC()
	return &Project{
		id:        uuid.NewString(),
		userID:    userID,
		template:  template,
		status:    vo.ProjectStatusGenerating,
		product:   product,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructProject(
	id, userID string,
	template vo.Template,
	status vo.ProjectStatus,
	product ProductDetails,
	createdAt, updatedAt time.Time,
) (*Project, error) {
	if id == "" {
		return nil, ErrProjectIDMissing
	}
	return &Project{
		id:        id,
		userID:    userID,
		template:  template,
		status:    status,
		product:   product,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

func (p *Project) ID() string { return p.id }
func (p *Project) UserID() string { return p.userID }
func (p *Project) Template() vo.Template { return p.template }
func (p *Project) Status() vo.ProjectStatus { return p.status }
func (p *Project) Product() ProductDetails { return p.product }
func (p *Project) CreatedAt() time.Time { return p.createdAt }
func (p *Project) UpdatedAt() time.Time { return p.updatedAt }

// MarkCompleted and MarkFailed are driven by the settle step only.
func (p *Project) MarkCompleted() {
	p.status = vo.ProjectStatusCompleted
	p.updatedAt = time.Now().UTC()
}

func (p *Project) MarkFailed() {
	p.status = vo.ProjectStatusFailed
	p.updatedAt = time.Now().UTC()
}

// IsOwnedBy reports whether userID owns the project.
func (p *Project) IsOwnedBy(userID string) bool {
	return userID != "" && p.userID == userID
}

// Prompt combines the template prompt with the product name when one is set.
func (p *Project) Prompt() string {
	prompt := p.template.Prompt()
	if p.product.Name != "" {
		prompt += fmt.Sprintf(", featuring \"%s\"", p.product.Name)
	}
	return prompt
}
