package services

// ServiceContainer holds all service facades needed by the handlers and
// scheduled jobs. Populated by services.NewServiceContainer.
type ServiceContainer struct {
	Workday      WorkdaySvcFacade
	CarryForward CarryForwardSvc
	Activity     ActivitySvcFacade
	Comment      CommentSvcFacade
	Audit        AuditSvcFacade
	User         UserSvcFacade
	Role         RoleSvcFacade
	Area         AreaSvcFacade
	TaskState    TaskStateSvcFacade
	Report       ReportSvcFacade
	Backup       BackupSvcFacade
	Notifier     NotifierSvc
	Token        TokenSvc
}
