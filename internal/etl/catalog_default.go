package etl

import "github.com/riskibarqy/football-etl/internal/domain/stats"

// DefaultCatalog returns the column configuration for sports-reference
// competition pages.
func DefaultCatalog() Catalog {
	return NewCatalog(
		[]CategorySpec{
			attackingSpec(),
			defenseSpec(),
			passingSpec(),
			goalkeepingSpec(),
			playingTimeSpec(),
		},
		leagueTableSpec(),
		fixturesSpec(),
		footballDataSpec(),
	)
}

func attackingSpec() CategorySpec {
	return CategorySpec{
		Category: stats.CategoryAttacking,
		First:    stats.SourceStandardStats,
		Merge: []MergeStep{
			{Source: stats.SourceShooting, Keys: []string{ColumnSquad, rawPlayerCount}},
			{Source: stats.SourceGoalShotCreation, Keys: []string{ColumnSquad, rawPlayerCount, rawMinutesBucket}},
		},
		Rename: map[string]string{
			"Playing_Time_MP":           ColumnMatches,
			"Performance_Gls":           "total_goals",
			"Performance_Ast":           "total_assists",
			"Performance_G_plus_A":      "goals_plus_assists",
			"Performance_G_minus_PK":    "non_penalty_goals",
			"Performance_PK":            "penalties_scored",
			"Performance_PKatt":         "penalties_attempted",
			"Expected_xG_x":             "total_expected_goals",
			"Expected_npxG_x":           "non_penalty_expected_goals",
			"Expected_xAG":              "expected_assisted_goals",
			"Progression_PrgC":          "progressive_carries",
			"Progression_PrgP":          "progressive_passes",
			"Per_90_Minutes_Gls":        "goals_per_90",
			"Per_90_Minutes_Ast":        "assists_per_90",
			"Per_90_Minutes_G_minus_PK": "non_penalty_goals_per_90",
			"Per_90_Minutes_xG":         "expected_goals_per_90",
			"Per_90_Minutes_xAG":        "expected_assisted_goals_per_90",
			"Per_90_Minutes_npxG":       "non_penalty_expected_goals_per_90",
			"Standard_Sh":               "total_shots",
			"Standard_SoT":              "total_shots_on_target",
			"Standard_SoT_perc":         "shots_on_target_perc",
			"Standard_Sh_per_90":        "shots_per_90",
			"Standard_SoT_per_90":       "shots_on_target_per_90",
			"Standard_G_per_Sh":         "goals_per_shot",
			"Standard_G_per_SoT":        "goals_per_shot_on_target",
			"Standard_Dist":             "average_shot_distance",
			"Standard_FK":               "free_kick_shots",
			"Expected_npxG_per_Sh":      "non_penalty_expected_goals_per_shot",
			"Expected_G_minus_xG":       "goals_minus_expected_goals",
			"Expected_np:G_minus_xG":    "non_penalty_goals_minus_expected_goals",
			"SCA_SCA":                   "total_shot_creating_actions",
			"SCA_SCA90":                 "shot_creating_actions_per_90",
			"GCA_GCA":                   "total_goal_creating_actions",
			"GCA_GCA90":                 "goal_creating_actions_per_90",
		},
		Ratios: []Ratio{
			{Name: "goal_to_assist_ratio", Numerator: "total_goals", Denominator: "total_assists"},
		},
		Totals: []string{
			"total_goals",
			"total_assists",
			"total_expected_goals",
			"non_penalty_expected_goals",
			"total_shots",
			"total_shots_on_target",
			"total_shot_creating_actions",
			"total_goal_creating_actions",
		},
		Drop: []string{
			"Playing_Time_Starts",
			"Playing_Time_Min",
			"Playing_Time_90s",
			"Performance_CrdY",
			"Performance_CrdR",
			"Per_90_Minutes_G_plus_A",
			"Per_90_Minutes_G_plus_A_minus_PK",
			"Expected_npxG_plus_xAG",
			"Per_90_Minutes_xG_plus_xAG",
			"Per_90_Minutes_npxG_plus_xAG",
			"90s",
			"Standard_Gls",
			"Expected_xG_y",
			"Expected_npxG_y",
		},
		Comparison: []string{
			ColumnMatches,
			"total_goals",
			"total_goals_per_match",
			"total_assists_per_match",
			"total_expected_goals_per_match",
			"non_penalty_expected_goals_per_match",
			"total_shots_per_match",
			"total_shots_on_target_per_match",
			"total_shot_creating_actions_per_match",
			"total_goal_creating_actions_per_match",
			"shots_on_target_perc",
			"goals_per_shot",
			"goal_to_assist_ratio",
		},
	}
}

func defenseSpec() CategorySpec {
	return CategorySpec{
		Category: stats.CategoryDefense,
		First:    stats.SourceDefensiveAction,
		Merge: []MergeStep{
			{Source: stats.SourceMiscellaneous, Keys: []string{ColumnSquad, rawPlayerCount, rawMinutesBucket}},
		},
		Rename: map[string]string{
			"90s":                   ColumnMatches,
			"Tackles_Tkl":           "total_tackles",
			"Tackles_TklW":          "tackles_won",
			"Tackles_Def_3rd":       "tackles_defensive_third",
			"Tackles_Mid_3rd":       "tackles_middle_third",
			"Tackles_Att_3rd":       "tackles_attacking_third",
			"Challenges_Tkl":        "dribblers_tackled",
			"Challenges_Att":        "dribbles_challenged",
			"Challenges_Tkl_perc":   "dribblers_tackled_perc",
			"Challenges_Lost":       "challenges_lost",
			"Blocks_Blocks":         "total_blocks",
			"Blocks_Sh":             "shots_blocked",
			"Blocks_Pass":           "passes_blocked",
			"Int":                   "total_interceptions",
			"Tkl_plus_Int":          "tackles_plus_interceptions",
			"Clr":                   "total_clearances",
			"Err":                   "errors_leading_to_shot",
			"Performance_CrdY":      "yellow_cards",
			"Performance_CrdR":      "red_cards",
			"Performance_2CrdY":     "second_yellow_cards",
			"Performance_Fls":       "fouls_committed",
			"Performance_Fld":       "fouls_drawn",
			"Performance_Off":       "offsides",
			"Performance_Crs":       "crosses",
			"Performance_PKwon":     "penalties_won",
			"Performance_PKcon":     "penalties_conceded",
			"Performance_OG":        "own_goals",
			"Performance_Recov":     "ball_recoveries",
			"Aerial_Duels_Won":      "aerial_duels_won",
			"Aerial_Duels_Lost":     "aerial_duels_lost",
			"Aerial_Duels_Won_perc": "aerial_duels_won_perc",
		},
		Totals: []string{
			"total_tackles",
			"tackles_won",
			"total_blocks",
			"total_interceptions",
			"total_clearances",
			"fouls_committed",
			"ball_recoveries",
			"aerial_duels_won",
		},
		Drop: []string{"Performance_Int", "Performance_TklW"},
		Comparison: []string{
			ColumnMatches,
			"total_tackles_per_match",
			"tackles_won_per_match",
			"total_blocks_per_match",
			"total_interceptions_per_match",
			"total_clearances_per_match",
			"fouls_committed_per_match",
			"ball_recoveries_per_match",
			"aerial_duels_won_perc",
			"dribblers_tackled_perc",
		},
	}
}

func passingSpec() CategorySpec {
	return CategorySpec{
		Category: stats.CategoryPassing,
		First:    stats.SourcePassing,
		Merge: []MergeStep{
			{Source: stats.SourcePassTypes, Keys: []string{ColumnSquad, rawPlayerCount, rawMinutesBucket}},
			{Source: stats.SourcePossession, Keys: []string{ColumnSquad, rawPlayerCount, rawMinutesBucket}},
		},
		Rename: map[string]string{
			"90s":                      ColumnMatches,
			"Total_Cmp":                "total_passes_completed",
			"Total_Att":                "total_passes_attempted",
			"Total_Cmp_perc":           "pass_completion_perc",
			"Total_TotDist":            "total_passing_distance",
			"Total_PrgDist":            "progressive_passing_distance",
			"Short_Cmp_perc":           "short_pass_completion_perc",
			"Medium_Cmp_perc":          "medium_pass_completion_perc",
			"Long_Cmp_perc":            "long_pass_completion_perc",
			"KP":                       "total_key_passes",
			"1_per_3":                  "passes_into_final_third",
			"PPA":                      "passes_into_penalty_area",
			"CrsPA":                    "crosses_into_penalty_area",
			"PrgP":                     "total_progressive_passes",
			"Pass_Types_TB":            "through_balls",
			"Pass_Types_Sw":            "switches",
			"Pass_Types_Crs":           "total_crosses",
			"Pass_Types_CK":            "corner_kicks",
			"Outcomes_Off":             "passes_offside",
			"Outcomes_Blocks":          "passes_blocked",
			"Poss":                     "possession_perc",
			"Touches_Touches":          "total_touches",
			"Touches_Att_Pen":          "touches_attacking_penalty_area",
			"Take_minus_Ons_Att":       "take_ons_attempted",
			"Take_minus_Ons_Succ":      "take_ons_successful",
			"Take_minus_Ons_Succ_perc": "take_on_success_perc",
			"Carries_Carries":          "total_carries",
			"Carries_PrgC":             "progressive_carries",
			"Carries_PrgDist":          "progressive_carrying_distance",
			"Carries_Mis":              "miscontrols",
			"Carries_Dis":              "times_dispossessed",
			"Receiving_Rec":            "passes_received",
			"Receiving_PrgR":           "progressive_passes_received",
		},
		Totals: []string{
			"total_passes_completed",
			"total_passes_attempted",
			"total_key_passes",
			"passes_into_final_third",
			"passes_into_penalty_area",
			"total_progressive_passes",
			"total_crosses",
			"total_touches",
			"total_carries",
			"progressive_carries",
		},
		Drop: []string{"Ast", "xAG", "xA", "A_minus_xAG", "Att", "Outcomes_Cmp"},
		Comparison: []string{
			ColumnMatches,
			"pass_completion_perc",
			"possession_perc",
			"total_passes_completed_per_match",
			"total_key_passes_per_match",
			"passes_into_final_third_per_match",
			"passes_into_penalty_area_per_match",
			"total_progressive_passes_per_match",
			"progressive_carries_per_match",
			"total_touches_per_match",
		},
	}
}

func goalkeepingSpec() CategorySpec {
	return CategorySpec{
		Category: stats.CategoryGoalkeeping,
		First:    stats.SourceGoalkeeping,
		Merge: []MergeStep{
			{Source: stats.SourceAdvGoalkeeping, Keys: []string{ColumnSquad, rawPlayerCount}},
		},
		Rename: map[string]string{
			"Playing_Time_MP":                 ColumnMatches,
			"Performance_GA":                  "goals_against",
			"Performance_GA90":                "goals_against_per_90",
			"Performance_SoTA":                "shots_on_target_against",
			"Performance_Saves":               "total_saves",
			"Performance_Save_perc":           "save_perc",
			"Performance_CS":                  "clean_sheets",
			"Performance_CS_perc":             "clean_sheet_perc",
			"Penalty_Kicks_PKatt":             "penalties_faced",
			"Penalty_Kicks_PKsv":              "penalties_saved",
			"Penalty_Kicks_Save_perc":         "penalty_save_perc",
			"Expected_PSxG":                   "post_shot_expected_goals",
			"Expected_PSxG_per_SoT":           "post_shot_expected_goals_per_shot_on_target",
			"Expected_PSxG_plus__per__minus_": "post_shot_expected_goals_minus_goals_allowed",
			"Crosses_Stp":                     "crosses_stopped",
			"Crosses_Stp_perc":                "crosses_stopped_perc",
			"Sweeper_#OPA":                    "defensive_actions_outside_penalty_area",
			"Goals_OG":                        "own_goals_against",
		},
		Totals: []string{
			"goals_against",
			"shots_on_target_against",
			"total_saves",
			"clean_sheets",
			"post_shot_expected_goals",
			"crosses_stopped",
			"defensive_actions_outside_penalty_area",
		},
		Drop: []string{
			"Playing_Time_Starts",
			"Playing_Time_Min",
			"Playing_Time_90s",
			"Performance_W",
			"Performance_D",
			"Performance_L",
			"90s",
			"Goals_GA",
		},
		Comparison: []string{
			ColumnMatches,
			"goals_against_per_match",
			"shots_on_target_against_per_match",
			"total_saves_per_match",
			"save_perc",
			"clean_sheet_perc",
			"post_shot_expected_goals_per_match",
			"post_shot_expected_goals_minus_goals_allowed",
			"crosses_stopped_perc",
		},
	}
}

func playingTimeSpec() CategorySpec {
	return CategorySpec{
		Category: stats.CategoryPlayingTime,
		First:    stats.SourcePlayingTime,
		Rename: map[string]string{
			"#_Pl":                                   "no_of_players_used",
			"Age":                                    "average_age",
			"Playing_Time_MP":                        ColumnMatches,
			"Subs_Subs":                              "no_of_subs_used",
			"Subs_Mn_per_Sub":                        "minutes_per_sub",
			"Subs_unSub":                             "no_of_subs_unused",
			"Team_Success__plus__per__minus_90":      "goals_scored_minus_against_per_90",
			"Team_Success_(xG)_onxG":                 "total_expect_goals",
			"Team_Success_(xG)_onxGA":                "total_expected_goals_against",
			"Team_Success_(xG)_xG_plus__per__minus_": "xg_minus_xga",
			"Team_Success_(xG)_xG_plus__per__minus_90": "xg_minus_xga_per_90",
		},
		Totals: []string{
			"no_of_subs_used",
			"no_of_subs_unused",
			"total_expect_goals",
			"total_expected_goals_against",
		},
		Keep: []string{
			ColumnSquad,
			"no_of_players_used",
			"average_age",
			ColumnMatches,
			"no_of_subs_used",
			"minutes_per_sub",
			"no_of_subs_unused",
			"goals_scored_minus_against_per_90",
			"total_expect_goals",
			"total_expected_goals_against",
			"xg_minus_xga",
			"xg_minus_xga_per_90",
			"no_of_subs_used_per_match",
			"no_of_subs_unused_per_match",
			"total_expect_goals_per_match",
			"total_expected_goals_against_per_match",
		},
		Comparison: []string{
			ColumnMatches,
			"no_of_players_used",
			"average_age",
			"no_of_subs_used_per_match",
			"no_of_subs_unused_per_match",
			"minutes_per_sub",
			"goals_scored_minus_against_per_90",
			"xg_minus_xga_per_90",
			"total_expect_goals_per_match",
			"total_expected_goals_against_per_match",
		},
	}
}

func leagueTableSpec() LeagueTableSpec {
	columns := []string{
		rawLeagueRank, ColumnSquad, ColumnMatches, "W", "D", "L", "GF", "GA", "GD", "Pts", "Pts/MP",
		"xG", "xGA", "xGD", "xGD/90",
	}
	for _, side := range []string{"Home", "Away"} {
		for _, stat := range []string{"MP", "W", "D", "L", "GF", "GA", "GD", "Pts", "Pts/MP"} {
			columns = append(columns, side+"_"+stat)
		}
	}
	ratio := func(name, num, den string) Ratio {
		return Ratio{Name: name, Numerator: num, Denominator: den, Round: true}
	}
	return LeagueTableSpec{
		JoinKeys: []string{ColumnSquad, rawLeagueRank},
		Columns:  columns,
		Rename: map[string]string{
			rawLeagueRank: "Position",
			"Pts/MP":      "Pts_Per_MP",
			"xGD/90":      "xGD_Per_90",
			"Home_Pts/MP": "Home_Pts_Per_MP",
			"Away_Pts/MP": "Away_Pts_Per_MP",
		},
		Ratios: []Ratio{
			ratio("win_perc", "W", "MP"),
			ratio("draw_perc", "D", "MP"),
			ratio("loss_perc", "L", "MP"),
			ratio("home_win_perc", "Home_W", "Home_MP"),
			ratio("home_draw_perc", "Home_D", "Home_MP"),
			ratio("home_loss_perc", "Home_L", "Home_MP"),
			ratio("away_win_perc", "Away_W", "Away_MP"),
			ratio("away_draw_perc", "Away_D", "Away_MP"),
			ratio("away_loss_perc", "Away_L", "Away_MP"),
			ratio("goals_per_game", "GF", "MP"),
			ratio("goals_against_per_game", "GA", "MP"),
			ratio("home_goals_per_game", "Home_GF", "Home_MP"),
			ratio("home_goals_against_per_game", "Home_GA", "Home_MP"),
			ratio("away_goals_per_game", "Away_GF", "Away_MP"),
			ratio("away_goals_against_per_game", "Away_GA", "Away_MP"),
		},
	}
}

func fixturesSpec() FixturesSpec {
	return FixturesSpec{
		ScoreColumn:    "Score",
		ScoreSeparator: fixturesScoreDash,
		DateColumn:     "Date",
		TimeColumn:     "Time",
		DateLayouts:    []string{"2006-01-02"},
		KickoffLayouts: []string{"2006-01-02 15:04", "2006-01-02 15:04:05"},
		Numeric:        []string{"week", "xG_home", "xG_away", "attendance"},
		Categorical:    []string{"home_team", "away_team", "venue", "referee"},
		Rename: map[string]string{
			"Wk":         "week",
			"Day":        "dow",
			"Date":       "date",
			"Time":       "time",
			"Home":       "home_team",
			"xG":         "xG_home",
			"xG.1":       "xG_away",
			"Away":       "away_team",
			"Attendance": "attendance",
			"Venue":      "venue",
			"Referee":    "referee",
			"Notes":      "notes",
		},
		Columns: []string{
			ColumnSeason,
			"week",
			"dow",
			"date",
			"time",
			"kickoff",
			"home_team",
			"xG_home",
			"home_score",
			"away_score",
			"xG_away",
			"away_team",
			"attendance",
			"venue",
			"referee",
			"notes",
		},
	}
}

func footballDataSpec() FootballDataSpec {
	return FootballDataSpec{
		Rename:         map[string]string{"div": "league_code"},
		KickoffLayouts: []string{"02/01/2006 15:04", "02/01/06 15:04"},
		Categorical:    []string{"league_code", "hometeam", "awayteam", "ftr", ColumnSeason},
		Numeric:        []string{"fthg", "ftag", "hthg", "htag", "b365h", "b365d", "b365a"},
		Columns: []string{
			"league_code",
			ColumnSeason,
			"date",
			"time",
			"kickoff",
			"hometeam",
			"awayteam",
			"fthg",
			"ftag",
			"ftr",
			"hthg",
			"htag",
			"htr",
			"b365h",
			"b365d",
			"b365a",
		},
	}
}
