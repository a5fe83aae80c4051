package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-code-gen/internal/logger"
	"github.com/MKhiriev/go-code-gen/internal/mock"
	"github.com/MKhiriev/go-code-gen/internal/store"
	"github.com/MKhiriev/go-code-gen/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestTemplateService(t *testing.T) (TemplateService, *mock.MockTemplateRepository, *mock.MockUserRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	templates := mock.NewMockTemplateRepository(ctrl)
	users := mock.NewMockUserRepository(ctrl)
	return NewTemplateService(templates, users, logger.Nop()), templates, users
}

// ── SeedDemoTemplates ────────────────────────────────────────────────────────

func TestSeedDemoTemplates_EmptyTableAttributesFirstUser(t *testing.T) {
	svc, templates, users := newTestTemplateService(t)
	ctx := context.Background()

	templates.EXPECT().CountTemplates(ctx).Return(int64(0), nil)
	users.EXPECT().FirstUserID(ctx).Return(int64(1), true, nil)
	templates.EXPECT().CreateTemplates(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, list []models.Template) error {
			require.Len(t, list, 3)
			names := make([]string, 0, len(list))
			for _, tpl := range list {
				names = append(names, tpl.Name)
				assert.True(t, tpl.IsPublic)
				require.NotNil(t, tpl.CreatorID)
				assert.Equal(t, int64(1), *tpl.CreatorID)
				assert.NotEmpty(t, tpl.Code)
				assert.NotEmpty(t, tpl.Tags)
			}
			assert.Equal(t, []string{"REST API controller", "Form with validation", "JWT authentication"}, names)
			assert.Contains(t, list[0].Code, "@Controller('items')")
			assert.Contains(t, list[1].Code, "useForm")
			assert.Contains(t, list[2].Code, "authMiddleware")
			return nil
		})

	seeded, err := svc.SeedDemoTemplates(ctx)
	require.NoError(t, err)
	assert.True(t, seeded)
}

func TestSeedDemoTemplates_NoUsersLeavesCreatorEmpty(t *testing.T) {
	svc, templates, users := newTestTemplateService(t)

	templates.EXPECT().CountTemplates(gomock.Any()).Return(int64(0), nil)
	users.EXPECT().FirstUserID(gomock.Any()).Return(int64(0), false, nil)
	templates.EXPECT().CreateTemplates(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, list []models.Template) error {
			for _, tpl := range list {
				assert.Nil(t, tpl.CreatorID)
			}
			return nil
		})

	seeded, err := svc.SeedDemoTemplates(context.Background())
	require.NoError(t, err)
	assert.True(t, seeded)
}

func TestSeedDemoTemplates_SkipsPopulatedTable(t *testing.T) {
	svc, templates, _ := newTestTemplateService(t)
	templates.EXPECT().CountTemplates(gomock.Any()).Return(int64(12), nil)

	seeded, err := svc.SeedDemoTemplates(context.Background())
	require.NoError(t, err)
	assert.False(t, seeded)
}

func TestSeedDemoTemplates_InsertFailure(t *testing.T) {
	svc, templates, users := newTestTemplateService(t)
	templates.EXPECT().CountTemplates(gomock.Any()).Return(int64(0), nil)
	users.EXPECT().FirstUserID(gomock.Any()).Return(int64(0), false, nil)
	templates.EXPECT().CreateTemplates(gomock.Any(), gomock.Any()).Return(store.ErrCommitingTransaction)

	seeded, err := svc.SeedDemoTemplates(context.Background())
	assert.ErrorIs(t, err, store.ErrCommitingTransaction)
	assert.False(t, seeded)
}

// ── ListTemplates ────────────────────────────────────────────────────────────

func TestListTemplates_PassesFilterThrough(t *testing.T) {
	svc, templates, _ := newTestTemplateService(t)
	filter := models.TemplateFilter{Language: "TypeScript", Category: "frontend", Page: models.Page{Limit: 100}}
	templates.EXPECT().ListTemplates(gomock.Any(), filter).Return([]models.Template{{ID: 2}}, nil)

	got, err := svc.ListTemplates(context.Background(), filter)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestListTemplates_NegativePage(t *testing.T) {
	svc, _, _ := newTestTemplateService(t)

	_, err := svc.ListTemplates(context.Background(), models.TemplateFilter{Page: models.Page{Limit: -1}})
	assert.ErrorIs(t, err, ErrInvalidPagination)
	assert.Equal(t, KindInvalid, KindOf(err))
}
