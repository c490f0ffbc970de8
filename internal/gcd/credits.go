package gcd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/lepinkainen/gcdtalker/internal/errors"
	"github.com/lepinkainen/gcdtalker/internal/gcddb"
)

// ResolveCredits returns the issue level credits followed by the credits of
// each story in storyIDs order. Duplicates are kept.
func ResolveCredits(ctx context.Context, s *gcddb.Session, issueID int, storyIDs []string) ([]Credit, error) {
	issueQuery := sq.Select("gcd_creator_name_detail.name", "gcd_issue_credit.credit_name").
		From("gcd_issue_credit").
		Join("gcd_creator_name_detail ON gcd_issue_credit.creator_id = gcd_creator_name_detail.id").
		Where(sq.Eq{"gcd_issue_credit.issue_id": issueID}).
		OrderBy("gcd_issue_credit.id")

	credits, err := gcddb.QueryAll(ctx, s, issueQuery, scanCredit)
	if err != nil {
		return nil, err
	}

	for _, sid := range storyIDs {
		storyID, err := strconv.Atoi(strings.TrimSpace(sid))
		if err != nil {
			return nil, errors.NewDataError(SourceName, fmt.Errorf("invalid story ID %q", sid))
		}

		storyQuery := sq.Select("gcd_creator_name_detail.name", "gcd_credit_type.name").
			From("gcd_story_credit").
			Join("gcd_credit_type ON gcd_credit_type.id = gcd_story_credit.credit_type_id").
			Join("gcd_creator_name_detail ON gcd_creator_name_detail.id = gcd_story_credit.creator_id").
			Where(sq.Eq{"gcd_story_credit.story_id": storyID}).
			OrderBy("gcd_story_credit.id")

		story, err := gcddb.QueryAll(ctx, s, storyQuery, scanCredit)
		if err != nil {
			return nil, err
		}
		credits = append(credits, story...)
	}

	return credits, nil
}

func scanCredit(row gcddb.Scanner) (Credit, error) {
	var c Credit
	err := row.Scan(&c.Name, &c.Role)
	return c, err
}
