package main

import (
	"path/filepath"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"nursery/config"
	"nursery/controllers"
	"nursery/database"
	"nursery/email"
	"nursery/logging"
	"nursery/orders"
	"nursery/routes"
)

func main() {
	config.LoadEnv()

	mode := config.GetEnv("GIN_MODE", gin.DebugMode)
	gin.SetMode(mode)

	log := logging.New(mode)
	defer log.Sync()

	database.ConnectMongo()
	database.InitCollections()

	classesPath := config.GetEnv("PLANT_CLASSES_PATH", "plants_names.json")
	if err := controllers.LoadClassNames(classesPath); err != nil {
		log.Warn("plant class names unavailable", zap.String("path", classesPath), zap.Error(err))
	}

	rules := config.DefaultRules()
	controllers.UseRules(rules)

	mailer := email.NewLogSender(log)
	controllers.UseServiceMailer(mailer)

	svc := orders.NewService(orders.Deps{
		Orders:        orders.NewMongoOrderStore(database.OrderCollection),
		Products:      orders.NewMongoPlantStore(database.PlantCollection),
		Users:         orders.NewMongoUserStore(database.UserCollection),
		Notifications: controllers.NewOrderNotifier(log),
		Mail:          mailer,
		Rules:         rules,
		Log:           log,
	})

	r := gin.Default()
	r.SetTrustedProxies(nil)
	r.Use(cors.Default())

	uploadDir := config.GetEnv("UPLOAD_DIR", "uploads")
	r.Static("/uploads", filepath.Clean(uploadDir))

	routes.RegisterRoutes(r, svc)

	port := config.GetEnv("PORT", "8080")
	log.Info("server listening", zap.String("port", port))
	if err := r.Run(":" + port); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}
