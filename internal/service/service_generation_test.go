package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-code-gen/internal/generator"
	"github.com/MKhiriev/go-code-gen/internal/logger"
	"github.com/MKhiriev/go-code-gen/internal/mock"
	"github.com/MKhiriev/go-code-gen/internal/store"
	"github.com/MKhiriev/go-code-gen/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type generationMocks struct {
	codes     *mock.MockGeneratedCodeRepository
	projects  *mock.MockProjectRepository
	templates *mock.MockTemplateRepository
	generator *mock.MockCodeGenerator
	publisher *mock.MockTaskPublisher
}

func newTestGenerationService(t *testing.T) (GenerationService, generationMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := generationMocks{
		codes:     mock.NewMockGeneratedCodeRepository(ctrl),
		projects:  mock.NewMockProjectRepository(ctrl),
		templates: mock.NewMockTemplateRepository(ctrl),
		generator: mock.NewMockCodeGenerator(ctrl),
		publisher: mock.NewMockTaskPublisher(ctrl),
	}
	storages := &store.Storages{
		GeneratedCodeRepository: m.codes,
		ProjectRepository:       m.projects,
		TemplateRepository:      m.templates,
	}
	return NewGenerationService(storages, m.generator, m.publisher, logger.Nop()), m
}

var alice = models.User{ID: 1, Username: "alice"}

func int64Ptr(v int64) *int64 { return &v }

// ── Generate ─────────────────────────────────────────────────────────────────

func TestGenerationService_Generate_StoresAndSchedules(t *testing.T) {
	svc, m := newTestGenerationService(t)
	ctx := context.Background()

	gomock.InOrder(
		m.generator.EXPECT().Generate(ctx, generator.Request{
			Requirements: "a counter button",
			Language:     models.DefaultLanguage,
			Framework:    models.DefaultFramework,
		}).Return(generator.Result{
			GeneratedCode: "export const Counter = () => null;",
			Language:      models.DefaultLanguage,
			Framework:     models.DefaultFramework,
			LinesOfCode:   1,
			Status:        models.StatusGenerated,
			Source:        generator.SourceFallback,
		}),
		m.codes.EXPECT().CreateGeneratedCode(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, c models.GeneratedCode) (models.GeneratedCode, error) {
				assert.Equal(t, alice.ID, c.UserID)
				assert.Equal(t, models.StatusGenerated, c.Status)
				assert.Equal(t, int64(0), c.Version)
				assert.False(t, c.CreatedAt.IsZero())
				c.ID = 42
				return c, nil
			}),
		m.publisher.EXPECT().Publish(gomock.Any(), models.ValidationTask{CodeID: 42, ExpectedVersion: 0}).Return(nil),
	)

	got, err := svc.Generate(ctx, alice, models.GenerateRequest{Requirements: "a counter button"})
	require.NoError(t, err)
	assert.Equal(t, int64(42), got.ID)
	assert.Equal(t, "a counter button", got.Requirements)
	assert.Equal(t, int64(1), got.LinesOfCode)
}

func TestGenerationService_Generate_PublishFailureKeepsRecord(t *testing.T) {
	svc, m := newTestGenerationService(t)

	m.generator.EXPECT().Generate(gomock.Any(), gomock.Any()).Return(generator.Result{Status: models.StatusGenerated})
	m.codes.EXPECT().CreateGeneratedCode(gomock.Any(), gomock.Any()).Return(models.GeneratedCode{ID: 5}, nil)
	m.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("queue is full"))

	got, err := svc.Generate(context.Background(), alice, models.GenerateRequest{Requirements: "x"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.ID)
}

func TestGenerationService_Generate_StoresAfterCallerDeadline(t *testing.T) {
	svc, m := newTestGenerationService(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()

	m.generator.EXPECT().Generate(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ generator.Request) generator.Result {
			<-ctx.Done()
			return generator.Result{
				GeneratedCode: "def solve():\n    return None\n",
				Language:      "python",
				LinesOfCode:   2,
				Status:        models.StatusGenerated,
				Source:        generator.SourceFallback,
			}
		})
	m.codes.EXPECT().CreateGeneratedCode(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, c models.GeneratedCode) (models.GeneratedCode, error) {
			require.NoError(t, ctx.Err())
			c.ID = 7
			return c, nil
		})
	m.publisher.EXPECT().Publish(gomock.Any(), models.ValidationTask{CodeID: 7}).DoAndReturn(
		func(ctx context.Context, _ models.ValidationTask) error {
			return ctx.Err()
		})

	got, err := svc.Generate(ctx, alice, models.GenerateRequest{Requirements: "x", Language: "python"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.ID)
	assert.Contains(t, got.GeneratedCode, "def solve")
	assert.ErrorIs(t, ctx.Err(), context.DeadlineExceeded)
}

func TestGenerationService_Generate_RequiresRequirements(t *testing.T) {
	svc, _ := newTestGenerationService(t)

	_, err := svc.Generate(context.Background(), alice, models.GenerateRequest{Requirements: " \n\t"})
	assert.ErrorIs(t, err, ErrRequirementsRequired)
	assert.Equal(t, KindInvalid, KindOf(err))
}

func TestGenerationService_Generate_UnknownReferences(t *testing.T) {
	t.Run("project", func(t *testing.T) {
		svc, m := newTestGenerationService(t)
		m.projects.EXPECT().ProjectExists(gomock.Any(), int64(9)).Return(false, nil)

		_, err := svc.Generate(context.Background(), alice, models.GenerateRequest{Requirements: "x", ProjectID: int64Ptr(9)})
		assert.ErrorIs(t, err, ErrProjectNotFound)
		assert.Equal(t, KindInvalid, KindOf(err))
	})

	t.Run("template", func(t *testing.T) {
		svc, m := newTestGenerationService(t)
		m.templates.EXPECT().TemplateExists(gomock.Any(), int64(3)).Return(false, nil)

		_, err := svc.Generate(context.Background(), alice, models.GenerateRequest{Requirements: "x", TemplateID: int64Ptr(3)})
		assert.ErrorIs(t, err, ErrTemplateNotFound)
	})

	t.Run("both exist", func(t *testing.T) {
		svc, m := newTestGenerationService(t)
		m.projects.EXPECT().ProjectExists(gomock.Any(), int64(9)).Return(true, nil)
		m.templates.EXPECT().TemplateExists(gomock.Any(), int64(3)).Return(true, nil)
		m.generator.EXPECT().Generate(gomock.Any(), gomock.Any()).Return(generator.Result{Status: models.StatusGenerated})
		m.codes.EXPECT().CreateGeneratedCode(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, c models.GeneratedCode) (models.GeneratedCode, error) {
				assert.Equal(t, int64(9), *c.ProjectID)
				assert.Equal(t, int64(3), *c.TemplateID)
				return c, nil
			})
		m.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

		_, err := svc.Generate(context.Background(), alice, models.GenerateRequest{
			Requirements: "x", ProjectID: int64Ptr(9), TemplateID: int64Ptr(3),
		})
		assert.NoError(t, err)
	})
}

func TestGenerationService_Generate_SaveFailure(t *testing.T) {
	svc, m := newTestGenerationService(t)
	m.generator.EXPECT().Generate(gomock.Any(), gomock.Any()).Return(generator.Result{})
	m.codes.EXPECT().CreateGeneratedCode(gomock.Any(), gomock.Any()).Return(models.GeneratedCode{}, store.ErrExecutingStatement)

	_, err := svc.Generate(context.Background(), alice, models.GenerateRequest{Requirements: "x"})
	assert.ErrorIs(t, err, store.ErrExecutingStatement)
	assert.Equal(t, KindInternal, KindOf(err))
}

// ── GetGeneratedCode ─────────────────────────────────────────────────────────

func TestGenerationService_GetGeneratedCode_Ownership(t *testing.T) {
	record := models.GeneratedCode{ID: 8, UserID: alice.ID}
	bob := models.User{ID: 2, Username: "bob"}

	tests := []struct {
		name     string
		viewer   *models.User
		wantKind ErrorKind
		wantErr  bool
	}{
		{name: "owner", viewer: &alice},
		{name: "anonymous", viewer: nil},
		{name: "other user", viewer: &bob, wantErr: true, wantKind: KindForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newTestGenerationService(t)
			m.codes.EXPECT().GetGeneratedCode(gomock.Any(), int64(8)).Return(record, nil)

			got, err := svc.GetGeneratedCode(context.Background(), tt.viewer, 8)
			if tt.wantErr {
				assert.Equal(t, tt.wantKind, KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, record, got)
		})
	}
}

func TestGenerationService_GetGeneratedCode_Missing(t *testing.T) {
	svc, m := newTestGenerationService(t)
	m.codes.EXPECT().GetGeneratedCode(gomock.Any(), int64(99)).Return(models.GeneratedCode{}, store.ErrGeneratedCodeNotFound)

	_, err := svc.GetGeneratedCode(context.Background(), &alice, 99)
	assert.Equal(t, KindNotFound, KindOf(err))
}

// ── History ──────────────────────────────────────────────────────────────────

func TestGenerationService_History(t *testing.T) {
	svc, m := newTestGenerationService(t)
	page := models.Page{Skip: 5, Limit: 10}
	m.codes.EXPECT().ListUserGeneratedCodes(gomock.Any(), alice.ID, page).Return([]models.GeneratedCode{{ID: 3}}, nil)

	got, err := svc.History(context.Background(), alice, page)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	_, err = svc.History(context.Background(), alice, models.Page{Skip: -1})
	assert.ErrorIs(t, err, ErrInvalidPagination)
}
