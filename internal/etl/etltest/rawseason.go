// Package etltest builds raw season tables shaped like the page fetcher's
// output, for tests of the pipeline and the services around it.
package etltest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/riskibarqy/football-etl/internal/domain/stats"
	"github.com/riskibarqy/football-etl/internal/domain/table"
)

// Headers maps each source table to its flattened header row, as produced
// by joining header levels with "_".
var Headers = map[stats.SourceTable][]string{
	stats.SourceLeagueTable: {
		"Rk", "Squad", "MP", "W", "D", "L", "GF", "GA", "GD", "Pts", "Pts/MP",
		"xG", "xGA", "xGD", "xGD/90", "Attendance", "Top Team Scorer", "Goalkeeper", "Notes",
	},
	stats.SourceLeagueTableSplit: withSides([]string{"Unnamed: 0_level_0_Rk", "Unnamed: 1_level_0_Squad"},
		"MP", "W", "D", "L", "GF", "GA", "GD", "Pts", "Pts/MP", "xG", "xGA", "xGD", "xGD/90"),
	stats.SourceStandardStats: {
		"Unnamed: 0_level_0_Squad", "Unnamed: 1_level_0_# Pl", "Unnamed: 2_level_0_Age", "Unnamed: 3_level_0_Poss",
		"Playing Time_MP", "Playing Time_Starts", "Playing Time_Min", "Playing Time_90s",
		"Performance_Gls", "Performance_Ast", "Performance_G+A", "Performance_G-PK", "Performance_PK",
		"Performance_PKatt", "Performance_CrdY", "Performance_CrdR",
		"Expected_xG", "Expected_npxG", "Expected_xAG", "Expected_npxG+xAG",
		"Progression_PrgC", "Progression_PrgP",
		"Per 90 Minutes_Gls", "Per 90 Minutes_Ast", "Per 90 Minutes_G+A", "Per 90 Minutes_G-PK",
		"Per 90 Minutes_G+A-PK", "Per 90 Minutes_xG", "Per 90 Minutes_xAG", "Per 90 Minutes_xG+xAG",
		"Per 90 Minutes_npxG", "Per 90 Minutes_npxG+xAG",
	},
	stats.SourceShooting: {
		"Unnamed: 0_level_0_Squad", "Unnamed: 1_level_0_# Pl", "Unnamed: 2_level_0_90s",
		"Standard_Gls", "Standard_Sh", "Standard_SoT", "Standard_SoT%", "Standard_Sh/90", "Standard_SoT/90",
		"Standard_G/Sh", "Standard_G/SoT", "Standard_Dist", "Standard_FK", "Standard_PK", "Standard_PKatt",
		"Expected_xG", "Expected_npxG", "Expected_npxG/Sh", "Expected_G-xG", "Expected_np:G-xG",
	},
	stats.SourceGoalShotCreation: {
		"Unnamed: 0_level_0_Squad", "Unnamed: 1_level_0_# Pl", "Unnamed: 2_level_0_90s",
		"SCA_SCA", "SCA_SCA90", "SCA Types_PassLive", "SCA Types_TO",
		"GCA_GCA", "GCA_GCA90", "GCA Types_PassLive", "GCA Types_TO",
	},
	stats.SourceDefensiveAction: {
		"Unnamed: 0_level_0_Squad", "Unnamed: 1_level_0_# Pl", "Unnamed: 2_level_0_90s",
		"Tackles_Tkl", "Tackles_TklW", "Tackles_Def 3rd", "Tackles_Mid 3rd", "Tackles_Att 3rd",
		"Challenges_Tkl", "Challenges_Att", "Challenges_Tkl%", "Challenges_Lost",
		"Blocks_Blocks", "Blocks_Sh", "Blocks_Pass",
		"Unnamed: 15_level_0_Int", "Unnamed: 16_level_0_Tkl+Int", "Unnamed: 17_level_0_Clr", "Unnamed: 18_level_0_Err",
	},
	stats.SourceMiscellaneous: {
		"Unnamed: 0_level_0_Squad", "Unnamed: 1_level_0_# Pl", "Unnamed: 2_level_0_90s",
		"Performance_CrdY", "Performance_CrdR", "Performance_2CrdY", "Performance_Fls", "Performance_Fld",
		"Performance_Off", "Performance_Crs", "Performance_Int", "Performance_TklW", "Performance_PKwon",
		"Performance_PKcon", "Performance_OG", "Performance_Recov",
		"Aerial Duels_Won", "Aerial Duels_Lost", "Aerial Duels_Won%",
	},
	stats.SourcePassing: {
		"Unnamed: 0_level_0_Squad", "Unnamed: 1_level_0_# Pl", "Unnamed: 2_level_0_90s",
		"Total_Cmp", "Total_Att", "Total_Cmp%", "Total_TotDist", "Total_PrgDist",
		"Short_Cmp", "Short_Att", "Short_Cmp%", "Medium_Cmp", "Medium_Att", "Medium_Cmp%",
		"Long_Cmp", "Long_Att", "Long_Cmp%",
		"Unnamed: 17_level_0_Ast", "Unnamed: 18_level_0_xAG", "Unnamed: 19_level_0_xA", "Unnamed: 20_level_0_A-xAG",
		"Unnamed: 21_level_0_KP", "Unnamed: 22_level_0_1/3", "Unnamed: 23_level_0_PPA",
		"Unnamed: 24_level_0_CrsPA", "Unnamed: 25_level_0_PrgP",
	},
	stats.SourcePassTypes: {
		"Unnamed: 0_level_0_Squad", "Unnamed: 1_level_0_# Pl", "Unnamed: 2_level_0_90s", "Unnamed: 3_level_0_Att",
		"Pass Types_Live", "Pass Types_Dead", "Pass Types_FK", "Pass Types_TB", "Pass Types_Sw",
		"Pass Types_Crs", "Pass Types_TI", "Pass Types_CK", "Corner Kicks_In", "Corner Kicks_Out",
		"Outcomes_Cmp", "Outcomes_Off", "Outcomes_Blocks",
	},
	stats.SourcePossession: {
		"Unnamed: 0_level_0_Squad", "Unnamed: 1_level_0_# Pl", "Unnamed: 2_level_0_Poss", "Unnamed: 3_level_0_90s",
		"Touches_Touches", "Touches_Def Pen", "Touches_Att Pen",
		"Take-Ons_Att", "Take-Ons_Succ", "Take-Ons_Succ%",
		"Carries_Carries", "Carries_TotDist", "Carries_PrgDist", "Carries_PrgC", "Carries_Mis", "Carries_Dis",
		"Receiving_Rec", "Receiving_PrgR",
	},
	stats.SourceGoalkeeping: {
		"Unnamed: 0_level_0_Squad", "Unnamed: 1_level_0_# Pl",
		"Playing Time_MP", "Playing Time_Starts", "Playing Time_Min", "Playing Time_90s",
		"Performance_GA", "Performance_GA90", "Performance_SoTA", "Performance_Saves", "Performance_Save%",
		"Performance_W", "Performance_D", "Performance_L", "Performance_CS", "Performance_CS%",
		"Penalty Kicks_PKatt", "Penalty Kicks_PKA", "Penalty Kicks_PKsv", "Penalty Kicks_PKm", "Penalty Kicks_Save%",
	},
	stats.SourceAdvGoalkeeping: {
		"Unnamed: 0_level_0_Squad", "Unnamed: 1_level_0_# Pl", "Unnamed: 2_level_0_90s",
		"Goals_GA", "Goals_PKA", "Goals_FK", "Goals_CK", "Goals_OG",
		"Expected_PSxG", "Expected_PSxG/SoT", "Expected_PSxG+/-", "Expected_/90",
		"Crosses_Opp", "Crosses_Stp", "Crosses_Stp%",
		"Sweeper_#OPA", "Sweeper_#OPA/90", "Sweeper_AvgDist",
	},
	stats.SourcePlayingTime: {
		"Unnamed: 0_level_0_Squad", "Unnamed: 1_level_0_# Pl", "Unnamed: 2_level_0_Age",
		"Playing Time_MP", "Playing Time_Min", "Playing Time_Mn/MP", "Playing Time_Min%", "Playing Time_90s",
		"Starts_Starts", "Starts_Mn/Start", "Starts_Compl",
		"Subs_Subs", "Subs_Mn/Sub", "Subs_unSub",
		"Team Success_PPM", "Team Success_onG", "Team Success_onGA", "Team Success_+/-", "Team Success_+/-90",
		"Team Success (xG)_onxG", "Team Success (xG)_onxGA", "Team Success (xG)_xG+/-", "Team Success (xG)_xG+/-90",
	},
}

// FixtureHeader is the schedule page header row.
var FixtureHeader = []string{
	"Wk", "Day", "Date", "Time", "Home", "xG", "Score", "xG.1", "Away",
	"Attendance", "Venue", "Referee", "Match Report", "Notes",
}

func withSides(prefix []string, cols ...string) []string {
	out := append([]string(nil), prefix...)
	for _, side := range []string{"Home", "Away"} {
		for _, s := range cols {
			out = append(out, side+"_"+s)
		}
	}
	return out
}

// Matches is the matches-played value written into every MP-like cell.
const Matches = 38

// Cell returns the deterministic value written for a non-identity cell.
func Cell(row, col int) float64 {
	return float64((row+1)*(col+1)) / 2
}

// Table builds a source table for squads with deterministic numbers.
// Squad names of opponent tables are prefixed with "vs ".
func Table(source stats.SourceTable, squads ...string) *table.Table {
	base := strings.TrimSuffix(string(source), "_opp")
	header := Headers[stats.SourceTable(base)]
	opponent := base != string(source)
	records := make([][]string, len(squads))
	for r, squad := range squads {
		record := make([]string, len(header))
		for c, name := range header {
			record[c] = cellText(trimPlaceholder(name), r, c, squad, opponent)
		}
		records[r] = record
	}
	t, err := table.FromRecords(header, records)
	if err != nil {
		panic(fmt.Sprintf("etltest: %s: %v", source, err))
	}
	return t
}

func trimPlaceholder(name string) string {
	if i := strings.Index(name, "_level_"); i >= 0 && strings.HasPrefix(name, "Unnamed") {
		rest := name[i+len("_level_"):]
		if j := strings.Index(rest, "_"); j >= 0 {
			return rest[j+1:]
		}
	}
	return name
}

func cellText(name string, row, col int, squad string, opponent bool) string {
	switch name {
	case "Squad":
		if opponent {
			return "vs " + squad
		}
		return squad
	case "Rk":
		return strconv.Itoa(row + 1)
	case "# Pl":
		return strconv.Itoa(20 + row)
	case "90s", "MP", "Playing Time_MP":
		return strconv.Itoa(Matches)
	case "Home_MP", "Away_MP":
		return strconv.Itoa(Matches / 2)
	case "Top Team Scorer", "Goalkeeper", "Notes":
		return ""
	}
	return strconv.FormatFloat(Cell(row, col), 'f', -1, 64)
}

// Fixtures builds a schedule where each squad hosts the next one. The last
// fixture is unplayed and has no score.
func Fixtures(squads ...string) *table.Table {
	records := make([][]string, 0, len(squads))
	for i, home := range squads {
		away := squads[(i+1)%len(squads)]
		score := fmt.Sprintf("%d–%d", i%3, (i+1)%2)
		if i == len(squads)-1 {
			score = ""
		}
		records = append(records, []string{
			strconv.Itoa(i + 1), "Sat", fmt.Sprintf("2023-08-%02d", 12+i), "15:00", home, "1.2", score, "0.8", away,
			"52,000", home + " Stadium", "Referee " + strconv.Itoa(i), "Match Report", "",
		})
	}
	t, err := table.FromRecords(FixtureHeader, records)
	if err != nil {
		panic(fmt.Sprintf("etltest: fixtures: %v", err))
	}
	return t
}

// RawSeason builds a complete raw season for squads.
func RawSeason(season string, squads ...string) stats.RawSeason {
	tables := map[stats.SourceTable]*table.Table{
		stats.SourceLeagueTable:      Table(stats.SourceLeagueTable, squads...),
		stats.SourceLeagueTableSplit: Table(stats.SourceLeagueTableSplit, squads...),
	}
	for _, src := range []stats.SourceTable{
		stats.SourceStandardStats, stats.SourceGoalkeeping, stats.SourceAdvGoalkeeping,
		stats.SourceShooting, stats.SourcePassing, stats.SourcePassTypes,
		stats.SourceGoalShotCreation, stats.SourceDefensiveAction, stats.SourcePossession,
		stats.SourcePlayingTime, stats.SourceMiscellaneous,
	} {
		for _, p := range stats.Perspectives() {
			tables[src.For(p)] = Table(src.For(p), squads...)
		}
	}
	return stats.RawSeason{Season: season, Tables: tables, Fixtures: Fixtures(squads...)}
}
