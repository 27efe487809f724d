package httpapi

import (
	"github.com/google/uuid"

	"github.com/turnos/turnos/pkg/apperror"
	"github.com/turnos/turnos/pkg/model"
	"github.com/turnos/turnos/pkg/roster"
)

// serviceDTO, employeeDTO, and rulesConfigDTO are the wire shapes for
// the core's model.Service/model.Employee/model.RulesConfig — kept
// separate from the core types so the core never imports anything
// JSON-tag-shaped for transport.
type serviceDTO struct {
	ID                        string   `json:"id"`
	Name                      string   `json:"name"`
	EnableNightShift          bool     `json:"enableNightShift"`
	StaffingNeeds             needsDTO `json:"staffingNeeds"`
	ConsecutivenessRules      rulesDTO `json:"consecutivenessRules"`
	TargetCompleteWeekendsOff *int     `json:"targetCompleteWeekendsOff"`
}

type needsDTO struct {
	MorningWeekday          int `json:"morningWeekday"`
	AfternoonWeekday        int `json:"afternoonWeekday"`
	NightWeekday            int `json:"nightWeekday"`
	MorningWeekendHoliday   int `json:"morningWeekendHoliday"`
	AfternoonWeekendHoliday int `json:"afternoonWeekendHoliday"`
	NightWeekendHoliday     int `json:"nightWeekendHoliday"`
}

type rulesDTO struct {
	MaxConsecutiveWorkDays                  int `json:"maxConsecutiveWorkDays"`
	PreferredConsecutiveWorkDays            int `json:"preferredConsecutiveWorkDays"`
	MaxConsecutiveDaysOff                   int `json:"maxConsecutiveDaysOff"`
	PreferredConsecutiveDaysOff             int `json:"preferredConsecutiveDaysOff"`
	MinConsecutiveDaysOffRequiredBeforeWork int `json:"minConsecutiveDaysOffRequiredBeforeWork"`
}

type employeeDTO struct {
	ID               string              `json:"id"`
	Name             string              `json:"name"`
	ServiceIDs       []string            `json:"serviceIds"`
	Preferences      preferencesDTO      `json:"preferences"`
	FixedAssignments []fixedAssignmentDTO `json:"fixedAssignments"`
}

type preferencesDTO struct {
	EligibleForDayOffAfterDuty bool            `json:"eligibleForDayOffAfterDuty"`
	PrefersWeekendWork         bool            `json:"prefersWeekendWork"`
	FixedWeeklyShiftDays       []string        `json:"fixedWeeklyShiftDays"`
	FixedWeeklyShiftTiming     string          `json:"fixedWeeklyShiftTiming"`
	WorkPattern                *string         `json:"workPattern"`
}

type fixedAssignmentDTO struct {
	Type        string `json:"type"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

type rulesConfigDTO struct {
	RestHours                int                  `json:"restHours"`
	MaxConsecutiveWork       int                  `json:"maxConsecutiveWork"`
	PreferredConsecutiveWork int                  `json:"preferredConsecutiveWork"`
	MaxConsecutiveOff        int                  `json:"maxConsecutiveOff"`
	PreferredConsecutiveOff  int                  `json:"preferredConsecutiveOff"`
	MinOffBeforeWork         int                  `json:"minOffBeforeWork"`
	DefaultTargetWeekendsOff int                  `json:"defaultTargetWeekendsOff"`
	Seed                     int64                `json:"seed"`
}

// toCoreInputs converts the request's wire DTOs into the core's
// model types, failing fast on malformed identifiers per spec.md §7's
// "data fault on input" taxonomy entry.
func (req scheduleRequest) toCoreInputs() (model.Service, []model.Employee, model.RulesConfig, error) {
	svcID, err := uuid.Parse(req.Service.ID)
	if err != nil {
		return model.Service{}, nil, model.RulesConfig{}, apperror.InvalidInput("service.id", "must be a UUID")
	}

	svc := model.Service{
		BaseModel:        model.BaseModel{ID: svcID},
		Name:             req.Service.Name,
		EnableNightShift: req.Service.EnableNightShift,
		StaffingNeeds: model.StaffingNeeds{
			MorningWeekday:          req.Service.StaffingNeeds.MorningWeekday,
			AfternoonWeekday:        req.Service.StaffingNeeds.AfternoonWeekday,
			NightWeekday:            req.Service.StaffingNeeds.NightWeekday,
			MorningWeekendHoliday:   req.Service.StaffingNeeds.MorningWeekendHoliday,
			AfternoonWeekendHoliday: req.Service.StaffingNeeds.AfternoonWeekendHoliday,
			NightWeekendHoliday:     req.Service.StaffingNeeds.NightWeekendHoliday,
		},
		ConsecutivenessRules: model.ConsecutivenessRules{
			MaxConsecutiveWorkDays:                  req.Service.ConsecutivenessRules.MaxConsecutiveWorkDays,
			PreferredConsecutiveWorkDays:             req.Service.ConsecutivenessRules.PreferredConsecutiveWorkDays,
			MaxConsecutiveDaysOff:                    req.Service.ConsecutivenessRules.MaxConsecutiveDaysOff,
			PreferredConsecutiveDaysOff:               req.Service.ConsecutivenessRules.PreferredConsecutiveDaysOff,
			MinConsecutiveDaysOffRequiredBeforeWork:   req.Service.ConsecutivenessRules.MinConsecutiveDaysOffRequiredBeforeWork,
		},
		TargetCompleteWeekendsOff: req.Service.TargetCompleteWeekendsOff,
	}

	employees := make([]model.Employee, 0, len(req.Employees))
	for _, e := range req.Employees {
		emp, err := e.toModel()
		if err != nil {
			return model.Service{}, nil, model.RulesConfig{}, err
		}
		employees = append(employees, emp)
	}

	rules := model.DefaultRulesConfig()
	if req.RulesConfig != nil {
		rules = model.RulesConfig{
			RestHours:                req.RulesConfig.RestHours,
			MaxConsecutiveWork:       req.RulesConfig.MaxConsecutiveWork,
			PreferredConsecutiveWork: req.RulesConfig.PreferredConsecutiveWork,
			MaxConsecutiveOff:        req.RulesConfig.MaxConsecutiveOff,
			PreferredConsecutiveOff:  req.RulesConfig.PreferredConsecutiveOff,
			MinOffBeforeWork:         req.RulesConfig.MinOffBeforeWork,
			DefaultTargetWeekendsOff: req.RulesConfig.DefaultTargetWeekendsOff,
			Penalties:                model.DefaultScorePenalties(),
			Seed:                     req.RulesConfig.Seed,
		}
	}

	return svc, employees, rules, nil
}

func (e employeeDTO) toModel() (model.Employee, error) {
	id, err := uuid.Parse(e.ID)
	if err != nil {
		return model.Employee{}, apperror.InvalidInput("employees[].id", "must be a UUID")
	}

	serviceIDs := make(map[uuid.UUID]bool, len(e.ServiceIDs))
	for _, s := range e.ServiceIDs {
		sid, err := uuid.Parse(s)
		if err != nil {
			return model.Employee{}, apperror.InvalidInput("employees[].serviceIds[]", "must be a UUID")
		}
		serviceIDs[sid] = true
	}

	fixedDays := make(map[string]bool, len(e.Preferences.FixedWeeklyShiftDays))
	for _, d := range e.Preferences.FixedWeeklyShiftDays {
		fixedDays[roster.NormalizeWeekday(d)] = true
	}

	var pattern *model.WorkPattern
	if e.Preferences.WorkPattern != nil {
		p := model.WorkPattern(*e.Preferences.WorkPattern)
		pattern = &p
	}

	fixedAssignments := make([]model.FixedAssignment, 0, len(e.FixedAssignments))
	for _, fa := range e.FixedAssignments {
		fixedAssignments = append(fixedAssignments, model.FixedAssignment{
			Type:        model.FixedAssignmentType(fa.Type),
			StartDate:   fa.StartDate,
			EndDate:     fa.EndDate,
			Description: fa.Description,
		})
	}

	return model.Employee{
		BaseModel:  model.BaseModel{ID: id},
		Name:       e.Name,
		ServiceIDs: serviceIDs,
		Preferences: model.EmployeePreferences{
			EligibleForDayOffAfterDuty: e.Preferences.EligibleForDayOffAfterDuty,
			PrefersWeekendWork:         e.Preferences.PrefersWeekendWork,
			FixedWeeklyShiftDays:       fixedDays,
			FixedWeeklyShiftTiming:     model.FixedWeeklyTiming(e.Preferences.FixedWeeklyShiftTiming),
			WorkPattern:                pattern,
		},
		FixedAssignments: fixedAssignments,
	}, nil
}
