package notify

import (
	"bytes"
	"fmt"
	"html/template"
)

var subjects = map[TemplateKind]string{
	KindAppointmentReminder:     "MedCare - Lembrete de Consulta: {{.PhysicianName}}",
	KindAppointmentConfirmation: "MedCare - Consulta agendada: {{.PhysicianName}}",
	KindMedicationReminder:      "MedCare - Lembrete de Medicamento: {{.Name}}",
	KindPasswordResetCode:       "MedCare - Código de recuperação de senha",
}

var bodies = map[TemplateKind]string{
	KindAppointmentReminder: `<h2>Lembrete de consulta</h2>
<p>Olá{{if .PatientName}}, {{.PatientName}}{{end}}! Sua consulta começa em {{.Lead}}.</p>
<ul>
<li><b>Tipo:</b> {{.AppointmentType}}</li>
<li><b>Médico:</b> {{.PhysicianName}} ({{.Specialty}})</li>
<li><b>Data:</b> {{.Date}} às {{.Time}}</li>
<li><b>Local:</b> {{.Location}}</li>
</ul>
<p>Chegue com antecedência.</p>`,

	KindAppointmentConfirmation: `<h2>Consulta agendada</h2>
<p>Olá{{if .PatientName}}, {{.PatientName}}{{end}}! Sua consulta foi registrada.</p>
<ul>
<li><b>Tipo:</b> {{.AppointmentType}}</li>
<li><b>Médico:</b> {{.PhysicianName}} ({{.Specialty}})</li>
<li><b>Data:</b> {{.Date}} às {{.Time}}</li>
<li><b>Local:</b> {{.Location}}</li>
</ul>
{{if .Notes}}<p><b>Observações:</b> {{.Notes}}</p>{{end}}`,

	KindMedicationReminder: `<h2>Hora do medicamento</h2>
<p>Olá{{if .PatientName}}, {{.PatientName}}{{end}}! Faltam {{.MinutesBefore}} minutos para tomar:</p>
<ul>
<li><b>Medicamento:</b> {{.Name}}</li>
<li><b>Dose:</b> {{.Dose}}</li>
<li><b>Horário:</b> {{.ScheduledTime}}</li>
</ul>
<p>Não esqueça de registrar a tomada no app.</p>`,

	KindPasswordResetCode: `<h2>Recuperação de senha</h2>
<p>Olá{{if .Name}}, {{.Name}}{{end}}! Seu código é:</p>
<p style="font-size:24px;letter-spacing:4px"><b>{{.Code}}</b></p>
<p>O código expira em {{.ExpiryMinutes}} minutos.</p>
{{if .ResetURL}}<p><a href="{{.ResetURL}}">Redefinir senha</a></p>{{end}}`,
}

var (
	subjectTpl = map[TemplateKind]*template.Template{}
	bodyTpl    = map[TemplateKind]*template.Template{}
)

func init() {
	for k, s := range subjects {
		subjectTpl[k] = template.Must(template.New(string(k) + "_subject").Parse(s))
	}
	for k, b := range bodies {
		bodyTpl[k] = template.Must(template.New(string(k)).Parse(b))
	}
}

// Render returns subject and HTML body for kind.
func Render(kind TemplateKind, payload any) (string, string, error) {
	st, ok := subjectTpl[kind]
	if !ok {
		return "", "", fmt.Errorf("unknown template %q", kind)
	}

	var subject, body bytes.Buffer
	if err := st.Execute(&subject, payload); err != nil {
		return "", "", fmt.Errorf("render subject %s: %w", kind, err)
	}
	if err := bodyTpl[kind].Execute(&body, payload); err != nil {
		return "", "", fmt.Errorf("render body %s: %w", kind, err)
	}

	return subject.String(), body.String(), nil
}
