package services

import (
	"errors"
	"fmt"

	"github.com/fsdevblog/shortlinks/internal/db"
	"github.com/fsdevblog/shortlinks/internal/repositories/memstore"
	"github.com/fsdevblog/shortlinks/internal/repositories/sql"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ServiceType string

const (
	ServiceTypeSQLite   ServiceType = "sqlite"
	ServiceTypeInMemory ServiceType = "inMemory"
)

type Services struct {
	LinkService ShortLinker
	PingService *PingService
}

// Factory собирает сервисный слой приложения поверх соединения с хранилищем,
// полученного от db.NewConnectionFactory.
func Factory(conn any, sType ServiceType, logger *logrus.Logger) (*Services, error) {
	switch sType {
	case ServiceTypeSQLite:
		gormDB, ok := conn.(*gorm.DB)
		if !ok {
			return nil, errors.New("invalid connection type. expected *gorm.DB")
		}
		return getSQLServices(gormDB, logger), nil
	case ServiceTypeInMemory:
		store, ok := conn.(*db.MemoryStorage)
		if !ok {
			return nil, errors.New("invalid connection type. expected *db.MemoryStorage")
		}
		return getInMemoryServices(store, logger), nil
	default:
		return nil, fmt.Errorf("unknown service type: %s", sType)
	}
}

func getSQLServices(conn *gorm.DB, logger *logrus.Logger) *Services {
	linkRepo := sql.NewLinkRepo(conn, logger)
	return &Services{
		LinkService: NewLinkService(linkRepo),
		PingService: NewPingService(db.NewSQLitePinger(conn)),
	}
}

func getInMemoryServices(store *db.MemoryStorage, logger *logrus.Logger) *Services {
	linkRepo := memstore.NewLinkRepo(store, logger)
	return &Services{
		LinkService: NewLinkService(linkRepo),
		PingService: NewPingService(store),
	}
}
