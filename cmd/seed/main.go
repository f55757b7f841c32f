package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"

	"github.com/user/medianexus/internal/config"
	"github.com/user/medianexus/internal/logger"
	"github.com/user/medianexus/internal/model"
	"github.com/user/medianexus/internal/repository"
)

// 默认题材，重复执行时已存在的会被跳过
var defaultGenres = []string{
	"Action", "Adventure", "Comedy", "Drama", "Fantasy",
	"Horror", "Mystery", "Romance", "Sci-Fi", "Slice of Life",
	"Thriller", "Documentary",
}

func main() {
	log := logger.Get()

	// 加载环境变量
	if err := godotenv.Load(); err != nil {
		log.Info("未找到 .env 文件，使用系统环境变量")
	}

	// 加载配置
	cfg := config.Load()

	// 初始化数据库
	db, err := repository.InitDB(cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("数据库连接失败")
	}
	sqlDB, _ := db.DB()
	defer sqlDB.Close()

	// 建表
	if err := repository.AutoMigrate(db); err != nil {
		log.WithError(err).Fatal("建表失败")
	}
	log.Info("数据库迁移完成")

	// 写入默认题材
	repos := repository.NewRepositories(db)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, name := range defaultGenres {
		if err := repos.Genre.Create(ctx, &model.Genre{Name: name}); err != nil {
			log.WithError(err).WithField("genre", name).Fatal("写入题材失败")
		}
	}
	log.WithField("count", len(defaultGenres)).Info("默认题材写入完成")
}
