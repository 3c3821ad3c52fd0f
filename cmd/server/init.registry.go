package main

import (
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/JoWinner/novu/config"
	"github.com/JoWinner/novu/internal/global"
)

func InitRegistry() {
	logrus.Info("Initialized registry") // Ghi log thông báo đã khởi tạo registry

	// Khởi tạo registry và đăng ký các collections
	err := InitCollections(global.MongoDB_Session, global.MongoDB_ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to initialize collections: %v", err)
	}
	logrus.Info("Initialized collection registry")
}

// InitCollections khởi tạo và đăng ký database cùng các collections MongoDB
func InitCollections(client *mongo.Client, cfg *config.Configuration) error {
	db := client.Database(cfg.MongoDB_DBName_Data)

	if _, err := global.RegistryDatabase.Register(cfg.MongoDB_DBName_Data, db); err != nil {
		logrus.Errorf("Failed to register database %s: %v", cfg.MongoDB_DBName_Data, err)
		return err
	}
	colNames := []string{
		global.MongoDB_ColNames.Messages,
		global.MongoDB_ColNames.Feeds,
		global.MongoDB_ColNames.Subscribers,
		global.MongoDB_ColNames.MessageTemplates,
	}

	for _, name := range colNames {
		registered, err := global.RegistryCollections.Register(name, db.Collection(name))
		if err != nil {
			logrus.Errorf("Failed to register collection %s: %v", name, err)
			return err
		}

		if registered {
			logrus.Infof("Collection %s registered successfully", name)
		} else {
			logrus.Errorf("Collection %s already registered", name)
		}
	}

	return nil
}
