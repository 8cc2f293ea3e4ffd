// Copyright (c) 2025 Querysmith
// Licensed under the MIT License. See LICENSE file in the project root for details.

package dsn

// PostgreSQLResolver accepts postgresql:// and postgres:// connection strings
type PostgreSQLResolver struct {
	form urlForm
}

// NewPostgreSQLResolver returns a resolver for PostgreSQL DSNs
func NewPostgreSQLResolver() *PostgreSQLResolver {
	return &PostgreSQLResolver{
		form: urlForm{
			kind:        DBTypePostgreSQL,
			schemes:     []string{"postgresql", "postgres"},
			defaultPort: "5432",
		},
	}
}

// Parse splits a PostgreSQL DSN into its fields
func (r *PostgreSQLResolver) Parse(dsn string) (*DSNInfo, error) {
	return r.form.parse(dsn)
}

// Normalize renders info canonically: postgresql:// scheme, explicit port
func (r *PostgreSQLResolver) Normalize(info *DSNInfo) (string, error) {
	return r.form.normalize(info)
}

// Validate parses dsn and applies the numeric-port rule
func (r *PostgreSQLResolver) Validate(dsn string) error {
	info, err := r.Parse(dsn)
	if err != nil {
		return err
	}
	return r.form.validate(info, dsn)
}
