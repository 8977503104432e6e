package service

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"fashionos_backend/internal/sponsors/repository"
	"fashionos_backend/platform/apperr"
)

type fakeRepo struct {
	sponsors     map[uuid.UUID]repository.Sponsor
	byUser       map[uuid.UUID]repository.Sponsor
	sponsorships []repository.Sponsorship
}

func (f *fakeRepo) CreateSponsor(_ context.Context, params repository.CreateSponsorParams) (repository.Sponsor, error) {
	sponsor := repository.Sponsor{
		ID:          uuid.New(),
		UserID:      params.UserID,
		CompanyName: params.CompanyName,
		Tier:        params.Tier,
		Industry:    params.Industry,
	}
	if f.sponsors == nil {
		f.sponsors = make(map[uuid.UUID]repository.Sponsor)
	}
	f.sponsors[sponsor.ID] = sponsor
	return sponsor, nil
}

func (f *fakeRepo) GetSponsor(_ context.Context, id uuid.UUID) (repository.Sponsor, error) {
	if sponsor, ok := f.sponsors[id]; ok {
		return sponsor, nil
	}
	return repository.Sponsor{}, apperr.NotFound("sponsor not found")
}

func (f *fakeRepo) GetSponsorByUser(_ context.Context, userID uuid.UUID) (repository.Sponsor, error) {
	if sponsor, ok := f.byUser[userID]; ok {
		return sponsor, nil
	}
	return repository.Sponsor{}, apperr.NotFound("sponsor not found")
}

func (f *fakeRepo) ListSponsors(_ context.Context, _, _ int) ([]repository.Sponsor, int, error) {
	return nil, 0, nil
}

func (f *fakeRepo) UpdateSponsor(_ context.Context, _ repository.UpdateSponsorParams) (repository.Sponsor, error) {
	return repository.Sponsor{}, nil
}

func (f *fakeRepo) CreateSponsorship(_ context.Context, params repository.CreateSponsorshipParams) (repository.Sponsorship, error) {
	sponsorship := repository.Sponsorship{
		ID:          uuid.New(),
		SponsorID:   params.SponsorID,
		EventID:     params.EventID,
		Package:     params.Package,
		AmountCents: params.AmountCents,
	}
	f.sponsorships = append(f.sponsorships, sponsorship)
	return sponsorship, nil
}

func (f *fakeRepo) GetSponsorship(_ context.Context, _ uuid.UUID) (repository.Sponsorship, error) {
	return repository.Sponsorship{}, apperr.NotFound("sponsorship not found")
}

func (f *fakeRepo) ListSponsorshipsBySponsor(_ context.Context, sponsorID uuid.UUID, _, _ int) ([]repository.Sponsorship, int, error) {
	var matched []repository.Sponsorship
	for _, s := range f.sponsorships {
		if s.SponsorID == sponsorID {
			matched = append(matched, s)
		}
	}
	return matched, len(matched), nil
}

func (f *fakeRepo) UpdateSponsorship(_ context.Context, _ repository.UpdateSponsorshipParams) (repository.Sponsorship, error) {
	return repository.Sponsorship{}, nil
}

func TestCreateSponsorshipRequiresExistingSponsor(t *testing.T) {
	repo := &fakeRepo{}
	svc := New(repo, nil)

	_, err := svc.CreateSponsorship(context.Background(), repository.CreateSponsorshipParams{
		SponsorID:   uuid.New(),
		EventID:     uuid.New(),
		AmountCents: 500000,
	})
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
	if len(repo.sponsorships) != 0 {
		t.Errorf("persisted %d sponsorships, want 0", len(repo.sponsorships))
	}
}

func TestCreateSponsorshipRejectsNegativeAmount(t *testing.T) {
	svc := New(&fakeRepo{}, nil)

	_, err := svc.CreateSponsorship(context.Background(), repository.CreateSponsorshipParams{
		SponsorID:   uuid.New(),
		EventID:     uuid.New(),
		AmountCents: -1,
	})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("err = %v, want validation", err)
	}
}

func TestListMySponsorshipsScopedToOwnSponsor(t *testing.T) {
	userID := uuid.New()
	sponsor := repository.Sponsor{ID: uuid.New(), UserID: userID, CompanyName: "Maison Lumière"}
	other := repository.Sponsor{ID: uuid.New(), UserID: uuid.New(), CompanyName: "Atelier Nord"}

	repo := &fakeRepo{
		sponsors: map[uuid.UUID]repository.Sponsor{sponsor.ID: sponsor, other.ID: other},
		byUser:   map[uuid.UUID]repository.Sponsor{userID: sponsor, other.UserID: other},
		sponsorships: []repository.Sponsorship{
			{ID: uuid.New(), SponsorID: sponsor.ID, EventID: uuid.New(), AmountCents: 100000},
			{ID: uuid.New(), SponsorID: other.ID, EventID: uuid.New(), AmountCents: 200000},
		},
	}
	svc := New(repo, nil)

	items, total, err := svc.ListMySponsorships(context.Background(), userID, 20, 0)
	if err != nil {
		t.Fatalf("ListMySponsorships: %v", err)
	}
	if total != 1 || len(items) != 1 {
		t.Fatalf("got %d items (total %d), want 1", len(items), total)
	}
	if items[0].SponsorID != sponsor.ID {
		t.Errorf("sponsorship belongs to %s, want %s", items[0].SponsorID, sponsor.ID)
	}
}

func TestListMySponsorshipsWithoutProfile(t *testing.T) {
	svc := New(&fakeRepo{}, nil)

	_, _, err := svc.ListMySponsorships(context.Background(), uuid.New(), 20, 0)
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}
