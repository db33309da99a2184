package domain

// JobType is a canonical employment-type tag.
type JobType string

const (
	JobTypeFullTime   JobType = "fulltime"
	JobTypePartTime   JobType = "parttime"
	JobTypeInternship JobType = "internship"
	JobTypeContract   JobType = "contract"
	JobTypeTemporary  JobType = "temporary"
	JobTypePerDiem    JobType = "perdiem"
	JobTypeNights     JobType = "nights"
	JobTypeSummer     JobType = "summer"
	JobTypeVolunteer  JobType = "volunteer"
	JobTypeOther      JobType = "other"
)

// AllJobTypes returns the canonical enumeration in stable order.
func AllJobTypes() []JobType {
	return []JobType{
		JobTypeFullTime,
		JobTypePartTime,
		JobTypeInternship,
		JobTypeContract,
		JobTypeTemporary,
		JobTypePerDiem,
		JobTypeNights,
		JobTypeSummer,
		JobTypeVolunteer,
		JobTypeOther,
	}
}

// CompensationInterval is a canonical pay period.
type CompensationInterval string

const (
	IntervalYearly  CompensationInterval = "yearly"
	IntervalMonthly CompensationInterval = "monthly"
	IntervalWeekly  CompensationInterval = "weekly"
	IntervalDaily   CompensationInterval = "daily"
	IntervalHourly  CompensationInterval = "hourly"
)
