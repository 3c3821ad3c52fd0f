package global

import (
	"github.com/JoWinner/novu/config"
	"github.com/JoWinner/novu/internal/registry"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDB_Message_CollectionName chứa tên các collection trong MongoDB
type MongoDB_Message_CollectionName struct {
	Messages         string // Tên collection cho message (nội dung đã render + trạng thái gửi)
	Feeds            string // Tên collection cho feed (phân luồng message in-app)
	Subscribers      string // Tên collection cho người nhận
	MessageTemplates string // Tên collection cho message template
}

// Các biến toàn cục
var Validate *validator.Validate               // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client              // Phiên kết nối tới MongoDB
var MongoDB_ServerConfig *config.Configuration // Cấu hình của server
var MongoDB_ColNames MongoDB_Message_CollectionName = *new(MongoDB_Message_CollectionName) // Tên các collection

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
var RegistryDatabase = registry.NewRegistry[*mongo.Database]()      // Registry chứa các databases
