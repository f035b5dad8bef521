package rewrite

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"
)

// SQLiteTestSuite executes rewritten statements against sqlite to check
// that the output is valid SQL and that values stay with their columns.
type SQLiteTestSuite struct {
	suite.Suite
	rewriter *Rewriter
	sqlite   *sql.DB
}

func (s *SQLiteTestSuite) SetupTest() {
	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)

	db, err := sql.Open("sqlite3", ":memory:")
	s.Require().NoError(err)
	db.SetMaxOpenConns(1)

	s.rewriter = New(logger)
	s.sqlite = db

	s.exec(`CREATE TABLE users (id integer PRIMARY KEY, name text, email text, active boolean)`)
	s.exec(`CREATE TABLE products (id integer PRIMARY KEY, name text, price numeric, total numeric)`)
}

func (s *SQLiteTestSuite) TearDownTest() {
	s.NoError(s.sqlite.Close())
}

func TestSQLiteTestSuite(t *testing.T) {
	suite.Run(t, new(SQLiteTestSuite))
}

func (s *SQLiteTestSuite) exec(query string) {
	_, err := s.sqlite.Exec(query)
	s.Require().NoError(err, query)
}

type user struct {
	ID     int64
	Name   string
	Email  sql.NullString
	Active sql.NullBool
}

func (s *SQLiteTestSuite) users() []user {
	rows, err := s.sqlite.Query("SELECT id, name, email, active FROM users ORDER BY id")
	s.Require().NoError(err)
	defer rows.Close()

	var results []user
	for rows.Next() {
		var u user
		s.Require().NoError(rows.Scan(&u.ID, &u.Name, &u.Email, &u.Active))
		results = append(results, u)
	}
	s.Require().NoError(rows.Err())

	return results
}

type product struct {
	ID    int64
	Name  string
	Price float64
	Total sql.NullFloat64
}

func (s *SQLiteTestSuite) products() []product {
	rows, err := s.sqlite.Query("SELECT id, name, price, total FROM products ORDER BY id")
	s.Require().NoError(err)
	defer rows.Close()

	var results []product
	for rows.Next() {
		var p product
		s.Require().NoError(rows.Scan(&p.ID, &p.Name, &p.Price, &p.Total))
		results = append(results, p)
	}
	s.Require().NoError(rows.Err())

	return results
}

func (s *SQLiteTestSuite) TestAddColumn() {
	rewritten, err := s.rewriter.AddColumn("active", "true",
		`INSERT INTO users (id, name) VALUES (1, 'John'), (2, 'O''Connor');`)
	s.NoError(err)
	s.exec(rewritten)

	s.Equal([]user{
		{ID: 1, Name: "John", Active: sql.NullBool{Bool: true, Valid: true}},
		{ID: 2, Name: "O'Connor", Active: sql.NullBool{Bool: true, Valid: true}},
	}, s.users())
}

func (s *SQLiteTestSuite) TestAddColumn_NoColumnList() {
	rewritten, err := s.rewriter.AddColumn("active", "false",
		`INSERT INTO users VALUES (1, 'John', 'john@example.com')`)
	s.NoError(err)
	s.exec(rewritten)

	s.Equal([]user{
		{
			ID:     1,
			Name:   "John",
			Email:  sql.NullString{String: "john@example.com", Valid: true},
			Active: sql.NullBool{Bool: false, Valid: true},
		},
	}, s.users())
}

func (s *SQLiteTestSuite) TestRemoveColumn() {
	rewritten, err := s.rewriter.RemoveColumn("email", `INSERT INTO users (id, name, email, active) VALUES
		(1, 'John', 'john@example.com', true),
		(2, 'Smith; DROP TABLE users;', 'smith@example.com', false)`)
	s.NoError(err)
	s.exec(rewritten)

	s.Equal([]user{
		{ID: 1, Name: "John", Active: sql.NullBool{Bool: true, Valid: true}},
		{ID: 2, Name: "Smith; DROP TABLE users;", Active: sql.NullBool{Bool: false, Valid: true}},
	}, s.users())
}

func (s *SQLiteTestSuite) TestExpressions() {
	rewritten, err := s.rewriter.RemoveColumn("total",
		`INSERT INTO products (id, name, price, total) VALUES (1, 'Widget', 10.50, 0), (2, 'Gad' || 'get', -(3 + 4) * 1.5, 0)`)
	s.NoError(err)
	s.exec(rewritten)

	s.Equal([]product{
		{ID: 1, Name: "Widget", Price: 10.5},
		{ID: 2, Name: "Gadget", Price: -10.5},
	}, s.products())
}

func (s *SQLiteTestSuite) TestOnConflict() {
	s.exec(`INSERT INTO users (id, name) VALUES (1, 'existing')`)

	rewritten, err := s.rewriter.AddColumn("email", "'new@example.com'",
		`INSERT INTO users (id, name) VALUES (1, 'John'), (2, 'Jane') ON CONFLICT (id) DO NOTHING`)
	s.NoError(err)
	s.exec(rewritten)

	s.Equal([]user{
		{ID: 1, Name: "existing"},
		{ID: 2, Name: "Jane", Email: sql.NullString{String: "new@example.com", Valid: true}},
	}, s.users())
}
