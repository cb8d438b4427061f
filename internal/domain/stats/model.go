package stats

import (
	"strings"
	"time"

	"github.com/riskibarqy/football-etl/internal/domain/table"
)

// Category is a statistical grouping of team performance data.
type Category string

const (
	CategoryAttacking   Category = "attacking"
	CategoryDefense     Category = "defense"
	CategoryPassing     Category = "passing"
	CategoryGoalkeeping Category = "goalkeeping"
	CategoryPlayingTime Category = "playing_time"
)

// AllCategories returns the recognised categories in canonical order.
func AllCategories() []Category {
	return []Category{
		CategoryAttacking,
		CategoryDefense,
		CategoryPassing,
		CategoryGoalkeeping,
		CategoryPlayingTime,
	}
}

func (c Category) Valid() bool {
	for _, known := range AllCategories() {
		if c == known {
			return true
		}
	}
	return false
}

// Perspective selects team data or opponent data (stats conceded to opponents).
type Perspective string

const (
	PerspectiveTeam     Perspective = "team_data"
	PerspectiveOpponent Perspective = "opponent_data"
)

func Perspectives() []Perspective {
	return []Perspective{PerspectiveTeam, PerspectiveOpponent}
}

// SourceTable names one raw table served by the page fetcher.
type SourceTable string

const (
	SourceLeagueTable      SourceTable = "league_table"
	SourceLeagueTableSplit SourceTable = "league_table_home_away"
	SourceStandardStats    SourceTable = "standard_stats"
	SourceGoalkeeping      SourceTable = "goalkeeping"
	SourceAdvGoalkeeping   SourceTable = "ad_goalkeeping"
	SourceShooting         SourceTable = "shooting"
	SourcePassing          SourceTable = "passing"
	SourcePassTypes        SourceTable = "pass_types"
	SourceGoalShotCreation SourceTable = "goal_shot_creation"
	SourceDefensiveAction  SourceTable = "defensive_action"
	SourcePossession       SourceTable = "possession"
	SourcePlayingTime      SourceTable = "playing_time"
	SourceMiscellaneous    SourceTable = "miscellaneous"
	opponentSourceSuffix               = "_opp"
)

// For returns the source table variant holding the given perspective.
func (s SourceTable) For(p Perspective) SourceTable {
	if p == PerspectiveOpponent {
		return s + opponentSourceSuffix
	}
	return s
}

// RawSeason is what the page fetcher returns for one competition season.
type RawSeason struct {
	Season   string
	Tables   map[SourceTable]*table.Table
	Fixtures *table.Table
}

// SeasonRecord is one season's merged dataset. It is not mutated after the
// season builder returns it.
type SeasonRecord struct {
	Season       string
	LeagueTable  *table.Table
	Fixtures     *table.Table
	TeamData     map[Category]*table.Table
	OpponentData map[Category]*table.Table
	// DroppedRows counts rows lost to inner joins, per perspective and category.
	DroppedRows map[Perspective]map[Category]int
}

// Data returns the category tables for a perspective.
func (r SeasonRecord) Data(p Perspective) map[Category]*table.Table {
	if p == PerspectiveOpponent {
		return r.OpponentData
	}
	return r.TeamData
}

// ComparisonRecord stacks one category across seasons, indexed by
// (Squad, season_name) and sorted by that index.
type ComparisonRecord struct {
	Category    Category
	Perspective Perspective
	Seasons     []string
	Table       *table.Table
}

// StoredKind labels what a persisted table holds.
type StoredKind string

const (
	KindLeagueTable StoredKind = "league_table"
	KindFixtures    StoredKind = "fixtures"
	KindComparison  StoredKind = "comparison"
	KindRanking     StoredKind = "ranking"
	KindResults     StoredKind = "results"
)

// TableKey identifies a persisted table. Season is empty for comparisons,
// Category and Perspective are empty for league tables, fixtures and results.
type TableKey struct {
	Competition string
	Kind        StoredKind
	Season      string
	Category    Category
	Perspective Perspective
}

// String renders the key as competition/kind/season/category/perspective.
func (k TableKey) String() string {
	return strings.Join([]string{k.Competition, string(k.Kind), k.Season, string(k.Category), string(k.Perspective)}, "/")
}

type StoredTable struct {
	Key         TableKey
	Table       *table.Table
	ContentHash string
	UpdatedAt   time.Time
}
