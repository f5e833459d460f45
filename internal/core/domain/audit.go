package domain

import "time"

// Audit action tags. Closed vocabulary shared with the frontend's audit
// view, kept verbatim from the deployed system.
const (
	ActionLogin           = "LOGIN"
	ActionCheckin         = "CHECKIN"
	ActionCheckout        = "CHECKOUT"
	ActionApproveWorkday  = "APROBAR_JORNADA"
	ActionRejectWorkday   = "RECHAZAR_JORNADA"
	ActionCreateActivity  = "CREAR_ACTIVIDAD"
	ActionUpdateActivity  = "ACTUALIZAR_ACTIVIDAD"
	ActionCreateUser      = "CREAR_USUARIO"
	ActionUpdateUser      = "ACTUALIZAR_USUARIO"
	ActionDeleteUser      = "ELIMINAR_USUARIO"
	ActionAssignRole      = "ASIGNAR_ROL"
	ActionAssignArea      = "ASIGNAR_AREA"
	ActionCreateState     = "CREAR_ESTADO"
	ActionUpdateState     = "ACTUALIZAR_ESTADO"
	ActionDeleteState     = "ELIMINAR_ESTADO"
	ActionCreateRole      = "CREAR_ROL"
	ActionUpdateRole      = "ACTUALIZAR_ROL"
	ActionDeleteRole      = "ELIMINAR_ROL"
	ActionCreateArea      = "CREAR_AREA"
	ActionUpdateArea      = "ACTUALIZAR_AREA"
	ActionDeleteArea      = "ELIMINAR_AREA"
	ActionReportSent      = "ENVIO_INFORME_AUTOMATICO"
	ActionReportManual    = "ENVIO_INFORME_MANUAL"
	ActionReportFailed    = "ERROR_INFORME_AUTOMATICO"
	ActionAuditPurge      = "LIMPIEZA_AUDITORIA"
	ActionBackupRun       = "BACKUP_EJECUTADO"
)

// AuditEntry is an append-only record of who did what, when.
type AuditEntry struct {
	EntryID     string    `json:"entryID"`
	UserID      string    `json:"userID"` // acting user, SystemUserID for scheduled jobs
	Action      string    `json:"action"`
	Description string    `json:"description,omitempty"`
	RecordedAt  time.Time `json:"recordedAt"`

	// ActorName is populated on composed reads for display.
	ActorName string `json:"actorName,omitempty"`
}
