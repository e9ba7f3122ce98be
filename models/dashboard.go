package models

type DashboardStats struct {
	MembersTotal         int `json:"members_total"`
	CoursesTotal         int `json:"courses_total"`
	TournamentsTotal     int `json:"tournaments_total"`
	TournamentsCompleted int `json:"tournaments_completed"`
	ScoresRecorded       int `json:"scores_recorded"`
}
