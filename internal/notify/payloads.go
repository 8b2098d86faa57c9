package notify

type AppointmentPayload struct {
	PatientName     string
	PhysicianName   string
	Specialty       string
	AppointmentType string
	Date            string
	Time            string
	Location        string
	Notes           string

	// Lead time label such as "1 hora" or "24 horas"; empty for
	// confirmations.
	Lead string
}

type MedicationPayload struct {
	PatientName   string
	Name          string
	Dose          string
	ScheduledTime string
	MinutesBefore int
}

type ResetCodePayload struct {
	Name          string
	Code          string
	ExpiryMinutes int
	ResetURL      string
}
