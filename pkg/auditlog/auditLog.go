package auditlog

import (
	"log"

	internal "github.com/rakuszz0/Inventory/internal/auditlog"
	"github.com/rakuszz0/Inventory/internal/repository"
	"github.com/rakuszz0/Inventory/pkg/models"
)

type Auditlog struct {
	r *internal.AuditLogRepository
}

type Auditable interface {
	CreateLogView() models.AuditLog
}

// Log persists an audit entry for item. Failures are logged and dropped so
// auditing never blocks or fails the request that triggered it.
func (a *Auditlog) Log(action string, data interface{}, item Auditable) {
	auditLog := item.CreateLogView()
	auditLog.Action = action

	if err := a.r.PersistLog(auditLog, data); err != nil {
		log.Println("Unable to create AuditLog entry for id ", auditLog.ResourceID)
		return
	}
}

func (a *Auditlog) ResourceHistory(resourceID, resourceType string) (*[]models.AuditLog, error) {
	return a.r.GetResourceLog(resourceID, resourceType)
}

func NewAuditLog(repository *repository.Repository) *Auditlog {
	return &Auditlog{r: internal.NewRepository(repository)}
}
