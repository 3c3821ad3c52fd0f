package main

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/JoWinner/novu/internal/api/events"
	"github.com/JoWinner/novu/internal/logger"
	"github.com/JoWinner/novu/internal/utility"
)

// InitDataChangeAudit đăng ký audit hook cho các sự kiện thay đổi dữ liệu CRUD.
// Mọi insert/update/delete qua tầng base đều được ghi vào audit log kèm
// environment sở hữu bản ghi, phục vụ truy vết hoạt động theo tenant.
func InitDataChangeAudit() {
	events.OnDataChanged(func(ctx context.Context, e events.DataChangeEvent) {
		auditLog := logger.GetAuditLogger()

		fields := logrus.Fields{
			"collection": e.CollectionName,
			"operation":  e.Operation,
		}

		if envID := events.GetOwnerEnvironmentIDFromDocument(e.Document); !envID.IsZero() {
			fields["environment_id"] = envID.Hex()
		}
		if createdAt := events.GetInt64Field(e.Document, "CreatedAt"); createdAt > 0 {
			fields["created_at"] = createdAt
		}

		auditLog.WithFields(fields).Info("Data changed")

		if auditLog.IsLevelEnabled(logrus.DebugLevel) && e.Document != nil {
			auditLog.WithField("document", utility.PrettyPrint(e.Document)).Debug("Data change detail")
		}
	})

	logrus.Info("Initialized data change audit hook")
}
