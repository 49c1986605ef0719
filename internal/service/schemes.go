package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/olegiv/gov-portal/internal/model"
)

// schemeCatalog is the static list of schemes shown on the schemes page.
var schemeCatalog = []model.Scheme{
	{ID: "pm-kisan", Name: "PM-KISAN", Category: "agriculture", State: "central", Description: "Income support of Rs 6000 per year to small and marginal farmer families."},
	{ID: "soil-health-card", Name: "Soil Health Card", Category: "agriculture", State: "central", Description: "Soil testing and crop-wise nutrient recommendations for farmers."},
	{ID: "ayushman-bharat", Name: "Ayushman Bharat", Category: "health", State: "central", Description: "Health insurance cover of Rs 5 lakh per family for secondary and tertiary care."},
	{ID: "pm-awas-yojana", Name: "Pradhan Mantri Awas Yojana", Category: "housing", State: "central", Description: "Financial assistance for building pucca houses for eligible households."},
	{ID: "digital-literacy", Name: "Digital Literacy Mission", Category: "education", State: "central", Description: "Digital literacy training for one member of every eligible household."},
	{ID: "skill-india", Name: "Skill India", Category: "employment", State: "central", Description: "Short-term skill training and certification for young job seekers."},
	{ID: "ladli-behna", Name: "Ladli Behna Yojana", Category: "women", State: "madhya-pradesh", Description: "Monthly financial assistance for women in Madhya Pradesh."},
	{ID: "kalia", Name: "KALIA", Category: "agriculture", State: "odisha", Description: "Livelihood support for cultivators and landless agricultural labourers in Odisha."},
	{ID: "amma-unavagam", Name: "Amma Unavagam", Category: "food", State: "tamil-nadu", Description: "Subsidised meals in municipal canteens across Tamil Nadu."},
}

// SchemeFilter holds the criteria of the schemes page filter bar.
// Empty values and "all" disable a criterion.
type SchemeFilter struct {
	Category string `json:"category"`
	State    string `json:"state"`
	Term     string `json:"term"`
}

// SchemeService serves the scheme catalog and scheme applications.
type SchemeService struct {
	auth     *AuthService
	activity *ActivityService
	logger   *slog.Logger
}

// NewSchemeService creates a new SchemeService.
func NewSchemeService(auth *AuthService, activity *ActivityService, logger *slog.Logger) *SchemeService {
	return &SchemeService{auth: auth, activity: activity, logger: logger}
}

// Catalog returns every scheme.
func (s *SchemeService) Catalog() []model.Scheme {
	return append([]model.Scheme(nil), schemeCatalog...)
}

// Filter returns the schemes matching the filter in catalog order.
func (s *SchemeService) Filter(f SchemeFilter) []model.Scheme {
	term := strings.ToLower(strings.TrimSpace(f.Term))

	var out []model.Scheme
	for _, sc := range schemeCatalog {
		if !matchesAll(f.Category) && sc.Category != f.Category {
			continue
		}
		if !matchesAll(f.State) && sc.State != f.State {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(sc.Name), term) &&
			!strings.Contains(strings.ToLower(sc.Description), term) {
			continue
		}
		out = append(out, sc)
	}
	return out
}

// Apply records an application for the named scheme.
func (s *SchemeService) Apply(ctx context.Context, schemeName string) error {
	id, ok := s.auth.CurrentID()
	if !ok {
		return model.ErrLoginRequired
	}
	s.activity.Record(ctx, id, model.ActionApplyScheme, "Applied for "+schemeName+" scheme")
	return nil
}

// TrackApplications returns the signed-in user's scheme applications.
func (s *SchemeService) TrackApplications() ([]model.ActivityEntry, error) {
	id, ok := s.auth.CurrentID()
	if !ok {
		return nil, model.ErrLoginRequired
	}
	return s.activity.ForUser(id, model.ActionApplyScheme), nil
}
