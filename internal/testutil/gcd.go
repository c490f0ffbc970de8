package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

// Fixture ids shared by tests across packages.
const (
	SeriesFantasticFour  = 1
	SeriesSpiderMan      = 2
	SeriesTangledWeb     = 3
	SeriesFantasticLower = 4
	SeriesWatchmen       = 5
	SeriesEmpty          = 6

	IssueFF1      = 101
	IssueFF2      = 102
	IssueFFNN     = 103
	IssueFF3      = 104
	IssueASM1     = 201
	IssueTangled1 = 301
	IssueWatch1   = 501
)

var gcdSchema = []string{
	`CREATE TABLE gcd_publisher (id INTEGER PRIMARY KEY, name TEXT NOT NULL)`,
	`CREATE TABLE stddata_country (id INTEGER PRIMARY KEY, code TEXT NOT NULL, name TEXT NOT NULL)`,
	`CREATE TABLE stddata_language (id INTEGER PRIMARY KEY, code TEXT NOT NULL, name TEXT NOT NULL)`,
	`CREATE TABLE gcd_series (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		sort_name TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		year_began INTEGER,
		year_ended INTEGER,
		issue_count INTEGER,
		publisher_id INTEGER,
		country_id INTEGER,
		language_id INTEGER,
		publishing_format TEXT NOT NULL DEFAULT '',
		is_current INTEGER NOT NULL DEFAULT 0,
		first_issue_id INTEGER
	)`,
	`CREATE TABLE gcd_indicia_publisher (id INTEGER PRIMARY KEY, name TEXT NOT NULL, country_id INTEGER)`,
	`CREATE TABLE gcd_brand (id INTEGER PRIMARY KEY, name TEXT NOT NULL)`,
	`CREATE TABLE gcd_brand_group (id INTEGER PRIMARY KEY, name TEXT NOT NULL)`,
	`CREATE TABLE gcd_brand_emblem_group (id INTEGER PRIMARY KEY, brand_id INTEGER, brandgroup_id INTEGER)`,
	`CREATE TABLE gcd_issue (
		id INTEGER PRIMARY KEY,
		number TEXT NOT NULL,
		key_date TEXT,
		title TEXT,
		series_id INTEGER NOT NULL,
		price TEXT NOT NULL DEFAULT '',
		valid_isbn TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		volume TEXT NOT NULL DEFAULT '',
		rating TEXT NOT NULL DEFAULT '',
		brand_id INTEGER,
		indicia_publisher_id INTEGER
	)`,
	`CREATE TABLE gcd_story (
		id INTEGER PRIMARY KEY,
		issue_id INTEGER NOT NULL,
		type_id INTEGER NOT NULL,
		sequence_number INTEGER NOT NULL DEFAULT 0,
		title TEXT,
		genre TEXT,
		synopsis TEXT,
		characters TEXT
	)`,
	`CREATE TABLE gcd_credit_type (id INTEGER PRIMARY KEY, name TEXT NOT NULL)`,
	`CREATE TABLE gcd_creator_name_detail (id INTEGER PRIMARY KEY, name TEXT NOT NULL)`,
	`CREATE TABLE gcd_story_credit (id INTEGER PRIMARY KEY, story_id INTEGER, creator_id INTEGER, credit_type_id INTEGER)`,
	`CREATE TABLE gcd_issue_credit (id INTEGER PRIMARY KEY, issue_id INTEGER, creator_id INTEGER, credit_name TEXT NOT NULL DEFAULT '')`,
}

var gcdSeed = []string{
	`INSERT INTO gcd_publisher (id, name) VALUES (1, 'Marvel'), (2, 'DC'), (3, 'Fantagraphics')`,
	`INSERT INTO stddata_country (id, code, name) VALUES (1, 'us', 'United States'), (2, 'gb', 'United Kingdom')`,
	`INSERT INTO stddata_language (id, code, name) VALUES (1, 'en', 'English')`,
	`INSERT INTO gcd_series (id, name, sort_name, notes, year_began, year_ended, issue_count, publisher_id, country_id, language_id, publishing_format, is_current, first_issue_id) VALUES
		(1, 'Fantastic Four', 'Fantastic Four', 'First family.', 1961, 1996, 416, 1, 1, 1, 'Ongoing series', 0, 101),
		(2, 'Amazing Spider-Man', 'Amazing Spider-Man', '', 1963, NULL, 441, 1, 1, 1, 'was ongoing series', 1, 201),
		(3, 'Spider-Man''s Tangled Web', 'Spider-Man''s Tangled Web', '', 2001, 2003, 22, 1, 1, 1, 'Limited Series', 0, 301),
		(4, 'fantastic four', 'fantastic four', '', 2010, 2010, 1, 3, 2, 1, 'Trade Paperback', 0, NULL),
		(5, 'Watchmen', 'Watchmen', '', 1986, 1987, 12, 2, 1, 1, 'Collects the maxi-series', 0, 501),
		(6, 'Empty Series', 'Empty Series', '', NULL, NULL, NULL, 3, 1, 1, '', 0, NULL)`,
	`INSERT INTO gcd_indicia_publisher (id, name, country_id) VALUES (1, 'Canam Publishers Sales Corp.', 1)`,
	`INSERT INTO gcd_brand (id, name) VALUES (1, 'Marvel Comics Group')`,
	`INSERT INTO gcd_brand_group (id, name) VALUES (1, 'Marvel'), (2, 'Atlas')`,
	`INSERT INTO gcd_brand_emblem_group (id, brand_id, brandgroup_id) VALUES (1, 1, 1), (2, 1, 2)`,
	`INSERT INTO gcd_issue (id, number, key_date, title, series_id, price, valid_isbn, notes, volume, rating, brand_id, indicia_publisher_id) VALUES
		(101, '1', '1961-11-00', '', 1, '0.10 USD', '', 'Origin issue.', '1', '', 1, 1),
		(102, '2', '1962-01-00', 'The Skrulls', 1, '0.10 USD; 0.12 CAD', '', '', '1', '', NULL, 1),
		(103, '[nn]', '', '', 1, '', '', '', '', '', NULL, NULL),
		(104, '3', NULL, '', 1, '', '', '', '', '', NULL, NULL),
		(201, '1', '1963-03-00', NULL, 2, '12.99 USD; 9.99 EUR', '9780785', '', '2', 'Teen', NULL, 1),
		(301, '1', '2001-06-00', '', 3, '2.99 USD', '', '', '', '', NULL, 1),
		(501, '1', '1986-09-00', '', 5, '1.50 USD', '', '', '', '', NULL, NULL)`,
	`INSERT INTO gcd_story (id, issue_id, type_id, sequence_number, title, genre, synopsis, characters) VALUES
		(1001, 101, 19, 1, 'The Fantastic Four!', 'superhero', 'The origin.', 'Mr. Fantastic; Invisible Girl'),
		(1002, 101, 19, 2, 'The Moleman''s Secret', 'science fiction', 'Underground.', 'Mole Man'),
		(1003, 101, 6, 0, 'Cover', 'cover genre', 'Cover synopsis.', 'Thing'),
		(1021, 102, 19, 1, 'Intro', 'superhero', 'A beginning.', ''),
		(1022, 102, 19, 2, 'Epilogue', 'superhero', 'An end.', NULL),
		(2001, 201, 19, 1, 'A', 'x', 'Syn A', 'Spider-Man'),
		(2002, 201, 19, 2, '', 'y', '', ''),
		(2003, 201, 19, 3, NULL, '', NULL, NULL)`,
	`INSERT INTO gcd_credit_type (id, name) VALUES (1, 'script'), (2, 'pencils'), (3, 'inks')`,
	`INSERT INTO gcd_creator_name_detail (id, name) VALUES (1, 'Stan Lee'), (2, 'Jack Kirby'), (3, 'Dick Ayers'), (4, 'Steve Ditko')`,
	`INSERT INTO gcd_issue_credit (id, issue_id, creator_id, credit_name) VALUES (1, 101, 1, 'editing')`,
	`INSERT INTO gcd_story_credit (id, story_id, creator_id, credit_type_id) VALUES
		(1, 1001, 1, 1), (2, 1001, 2, 2),
		(3, 1002, 1, 1), (4, 1002, 2, 2), (5, 1002, 3, 3),
		(6, 2001, 4, 2)`,
}

// NewGCDFixture builds a small GCD snapshot inside the test environment and
// returns its path. Performance artifacts (story index, fts) are left for the
// code under test to create.
func NewGCDFixture(t *testing.T, env *TestEnv) string {
	t.Helper()

	path := env.Path("gcd.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("failed to open fixture database: %v", err)
	}
	defer func() { _ = db.Close() }()

	for _, stmt := range append(append([]string{}, gcdSchema...), gcdSeed...) {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("failed to build fixture database: %v\n%s", err, stmt)
		}
	}

	return path
}
