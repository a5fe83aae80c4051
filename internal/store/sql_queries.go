package store

import (
	"fmt"

	"github.com/MKhiriev/go-code-gen/models"
	sq "github.com/Masterminds/squirrel"
)

var (
	userColumns = []string{
		"id", "username", "email", "full_name", "role", "avatar_url",
		"hashed_password", "skills", "bio", "is_active", "created_at", "updated_at",
	}

	projectColumns = []string{
		"id", "name", "description", "status", "language", "framework",
		"lines_of_code", "files_count", "owner_id", "created_at", "updated_at",
	}

	templateColumns = []string{
		"id", "name", "description", "language", "category", "framework", "code",
		"downloads", "rating", "tags", "is_public", "creator_id", "created_at",
	}

	generatedCodeColumns = []string{
		"id", "requirements", "generated_code", "language", "framework", "lines_of_code",
		"status", "validation_errors", "optimization_suggestions", "user_id",
		"project_id", "template_id", "version", "created_at",
	}
)

// ── users ─────────────────────────────────────────────────────────────────────

func buildCreateUserQuery(sb sq.StatementBuilderType, user models.User) (string, []any, error) {
	return sb.Insert("users").
		Columns("username", "email", "full_name", "role", "avatar_url",
			"hashed_password", "skills", "bio", "is_active", "created_at").
		Values(user.Username, user.Email, user.FullName, user.Role, user.AvatarURL,
			user.HashedPassword, user.Skills, user.Bio, user.IsActive, user.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
}

// buildFindUserQuery selects a single user by an exact match on column.
func buildFindUserQuery(sb sq.StatementBuilderType, column string, value any) (string, []any, error) {
	return sb.Select(userColumns...).
		From("users").
		Where(sq.Eq{column: value}).
		Limit(1).
		ToSql()
}

func buildUpdateProfileQuery(sb sq.StatementBuilderType, user models.User) (string, []any, error) {
	return sb.Update("users").
		Set("full_name", user.FullName).
		Set("email", user.Email).
		Set("role", user.Role).
		Set("avatar_url", user.AvatarURL).
		Set("bio", user.Bio).
		Set("skills", user.Skills).
		Set("updated_at", user.UpdatedAt).
		Where(sq.Eq{"id": user.ID}).
		ToSql()
}

func buildFirstUserIDQuery(sb sq.StatementBuilderType) (string, []any, error) {
	return sb.Select("id").From("users").OrderBy("id ASC").Limit(1).ToSql()
}

// ── projects ──────────────────────────────────────────────────────────────────

func buildCreateProjectQuery(sb sq.StatementBuilderType, p models.Project) (string, []any, error) {
	return sb.Insert("projects").
		Columns("name", "description", "status", "language", "framework",
			"lines_of_code", "files_count", "owner_id", "created_at", "updated_at").
		Values(p.Name, p.Description, p.Status, p.Language, p.Framework,
			p.LinesOfCode, p.FilesCount, p.OwnerID, p.CreatedAt, p.UpdatedAt).
		Suffix("RETURNING id").
		ToSql()
}

func buildListProjectsQuery(sb sq.StatementBuilderType, page models.Page) (string, []any, error) {
	q := sb.Select(projectColumns...).From("projects").OrderBy("id ASC")
	return paginate(q, page).ToSql()
}

// ── templates ─────────────────────────────────────────────────────────────────

func buildListTemplatesQuery(sb sq.StatementBuilderType, filter models.TemplateFilter) (string, []any, error) {
	where := sq.Eq{"is_public": true}
	if filter.Language != "" {
		where["language"] = filter.Language
	}
	if filter.Category != "" {
		where["category"] = filter.Category
	}
	if filter.Framework != "" {
		where["framework"] = filter.Framework
	}

	q := sb.Select(templateColumns...).From("templates").Where(where).OrderBy("id ASC")
	return paginate(q, filter.Page).ToSql()
}

func buildInsertTemplateQuery(sb sq.StatementBuilderType, t models.Template) (string, []any, error) {
	return sb.Insert("templates").
		Columns("name", "description", "language", "category", "framework", "code",
			"downloads", "rating", "tags", "is_public", "creator_id", "created_at").
		Values(t.Name, t.Description, t.Language, t.Category, t.Framework, t.Code,
			t.Downloads, t.Rating, t.Tags, t.IsPublic, t.CreatorID, t.CreatedAt).
		ToSql()
}

// ── generated codes ───────────────────────────────────────────────────────────

func buildCreateGeneratedCodeQuery(sb sq.StatementBuilderType, g models.GeneratedCode) (string, []any, error) {
	return sb.Insert("generated_codes").
		Columns("requirements", "generated_code", "language", "framework", "lines_of_code",
			"status", "user_id", "project_id", "template_id", "version", "created_at").
		Values(g.Requirements, g.GeneratedCode, g.Language, g.Framework, g.LinesOfCode,
			g.Status, g.UserID, g.ProjectID, g.TemplateID, g.Version, g.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
}

func buildGetGeneratedCodeQuery(sb sq.StatementBuilderType, id int64) (string, []any, error) {
	return sb.Select(generatedCodeColumns...).
		From("generated_codes").
		Where(sq.Eq{"id": id}).
		ToSql()
}

func buildListUserGeneratedCodesQuery(sb sq.StatementBuilderType, userID int64, page models.Page) (string, []any, error) {
	q := sb.Select(generatedCodeColumns...).
		From("generated_codes").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("id DESC")
	return paginate(q, page).ToSql()
}

// buildUpdateValidationQuery is a compare-and-swap on (id, version).
func buildUpdateValidationQuery(sb sq.StatementBuilderType, u models.ValidationUpdate) (string, []any, error) {
	return sb.Update("generated_codes").
		Set("status", u.Status).
		Set("validation_errors", u.Errors).
		Set("optimization_suggestions", u.Suggestions).
		Set("version", sq.Expr("version + 1")).
		Where(sq.Eq{"id": u.CodeID, "version": u.ExpectedVersion}).
		ToSql()
}

func buildUserStatsQuery(sb sq.StatementBuilderType, userID int64) (string, []any, error) {
	return sb.Select("COUNT(*)", "CAST(COALESCE(SUM(lines_of_code), 0) AS BIGINT)").
		From("generated_codes").
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

// ── shared ────────────────────────────────────────────────────────────────────

func buildExistsQuery(sb sq.StatementBuilderType, table string, id int64) (string, []any, error) {
	return sb.Select("COUNT(*)").From(table).Where(sq.Eq{"id": id}).ToSql()
}

func buildCountQuery(sb sq.StatementBuilderType, table string, where sq.Sqlizer) (string, []any, error) {
	q := sb.Select("COUNT(*)").From(table)
	if where != nil {
		q = q.Where(where)
	}
	return q.ToSql()
}

func buildStatsQuery(sb sq.StatementBuilderType) (string, []any, error) {
	return sb.Select().
		Column("(SELECT COUNT(*) FROM projects)").
		Column(sq.Expr("(SELECT COUNT(*) FROM projects WHERE status = ?)", models.ProjectCompleted)).
		Column("(SELECT CAST(COALESCE(SUM(lines_of_code), 0) AS BIGINT) FROM projects)").
		Column(sq.Expr("(SELECT COUNT(*) FROM projects WHERE status = ?)", models.ProjectInProgress)).
		Column(sq.Expr("(SELECT COUNT(*) FROM templates WHERE is_public = ?)", true)).
		Column("(SELECT COUNT(*) FROM users)").
		ToSql()
}

func paginate(q sq.SelectBuilder, page models.Page) sq.SelectBuilder {
	limit := page.Limit
	if limit < 0 {
		limit = 0
	}
	q = q.Limit(uint64(limit))
	if page.Skip > 0 {
		q = q.Offset(uint64(page.Skip))
	}
	return q
}

func wrapBuildErr(err error) error {
	return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
}
