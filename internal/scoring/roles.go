package scoring

import (
	"context"

	"go.uber.org/zap"

	"github.com/spigell/ats-scorer/internal/ai"
	"github.com/spigell/ats-scorer/internal/embedcache"
	"github.com/spigell/ats-scorer/internal/logger"
)

// RoleTemplate is a hand-authored job family description used as a
// comparison anchor when no job description is supplied.
type RoleTemplate struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

// DefaultRoles is the built-in catalog, in tie-break order.
func DefaultRoles() []RoleTemplate {
	return []RoleTemplate{
		{Name: "Frontend Developer", Description: "Frontend development, React, Vue, Angular, JavaScript, TypeScript, HTML, CSS, responsive design, UI/UX, single page applications, component architecture, state management, Redux, web performance."},
		{Name: "Backend Developer", Description: "Backend development, Node.js, Python, Java, C#, REST APIs, databases, SQL, MongoDB, PostgreSQL, microservices, authentication, server-side logic, API design, caching."},
		{Name: "Full Stack Developer", Description: "Full stack development, frontend and backend, React, Node.js, databases, REST APIs, JavaScript, TypeScript, system design, deployment, DevOps basics, end-to-end development."},
		{Name: "Data Engineer", Description: "Data engineering, ETL, Python, SQL, data pipelines, Apache Spark, data warehousing, cloud data services, database design, data modeling, big data, Airflow."},
		{Name: "Data Scientist", Description: "Data science, machine learning, Python, statistics, pandas, scikit-learn, data analysis, visualization, SQL, Jupyter, predictive modeling, deep learning."},
		{Name: "DevOps Engineer", Description: "DevOps, CI/CD, Docker, Kubernetes, AWS, Azure, GCP, Linux, scripting, infrastructure as code, Terraform, monitoring, cloud architecture, automation."},
		{Name: "Software Engineer", Description: "Software engineering, programming, algorithms, data structures, OOP, design patterns, version control, testing, agile, problem solving, code quality."},
		{Name: "Product Manager", Description: "Product management, roadmap, user stories, agile, stakeholder management, analytics, prioritization, cross-functional teams, product strategy, requirements."},
	}
}

// RoleEmbedding pairs a template with its vector.
type RoleEmbedding struct {
	Role   RoleTemplate
	Vector []float32
}

// RoleCache lazily embeds the role catalog and keeps the vectors in a Store.
// Vectors are computed on first use and live until the store's TTL expires
// or Invalidate is called. Concurrent callers may embed the same role twice;
// the last write wins.
type RoleCache struct {
	roles  []RoleTemplate
	store  embedcache.Store
	logger *zap.Logger
}

// NewRoleCache builds a cache over roles. A nil store keeps vectors in memory
// for the process lifetime.
func NewRoleCache(roles []RoleTemplate, store embedcache.Store, log *zap.Logger) *RoleCache {
	if len(roles) == 0 {
		roles = DefaultRoles()
	}
	if store == nil {
		store = embedcache.NewMemory(0)
	}

	return &RoleCache{
		roles:  roles,
		store:  store,
		logger: logger.WithFields(log, zap.String("component", "role_cache")),
	}
}

// Roles returns the catalog in tie-break order.
func (c *RoleCache) Roles() []RoleTemplate {
	out := make([]RoleTemplate, len(c.roles))
	copy(out, c.roles)
	return out
}

// Embeddings returns the vectors for every role the embedder could embed, in
// catalog order. Roles that failed are skipped and retried on the next call.
func (c *RoleCache) Embeddings(ctx context.Context, embedder ai.Embedder) []RoleEmbedding {
	if embedder == nil {
		return nil
	}

	out := make([]RoleEmbedding, 0, len(c.roles))
	for _, role := range c.roles {
		key := embedcache.Key(embedder.Provider(), embedder.Model(), role.Name, role.Description)

		if vec, ok := c.store.Get(ctx, key); ok {
			out = append(out, RoleEmbedding{Role: role, Vector: vec})
			continue
		}

		vec, err := embedder.Embed(ctx, Normalize(role.Description))
		if err != nil || len(vec) == 0 {
			c.logger.Debug("role embedding unavailable", zap.String("role", role.Name), zap.Error(err))
			continue
		}

		if err := c.store.Set(ctx, key, vec); err != nil {
			c.logger.Warn("caching role embedding failed", zap.String("role", role.Name), zap.Error(err))
		}
		out = append(out, RoleEmbedding{Role: role, Vector: vec})
	}

	return out
}

// Invalidate drops every cached vector.
func (c *RoleCache) Invalidate(ctx context.Context) error {
	return c.store.Clear(ctx)
}
