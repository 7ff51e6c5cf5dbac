package mysql

import (
	"database/sql"
	"fmt"

	"github.com/upper/db/v4"
	upperMysql "github.com/upper/db/v4/adapter/mysql"
	"github.com/yatube/yatube-be/config"
	appDb "github.com/yatube/yatube-be/db"
)

type MySQLDB struct {
	*PostDB
	*GroupDB
	*UserDB
	*FollowDB
	sess  db.Session
	sqlDB *sql.DB
}

func GetDatabase(cfg *config.Config) (appDb.Database, error) {
	sqlDB, err := sql.Open("mysql",
		fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true",
			cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBName))
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(50)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxIdleTime(0)

	if cfg.MigrationsPath != "" {
		if err := runMigrations(cfg); err != nil {
			return nil, err
		}
	}

	sess, err := upperMysql.New(sqlDB)
	if err != nil {
		return nil, err
	}

	return &MySQLDB{
		PostDB:   getPostDB(sess),
		GroupDB:  getGroupDB(sess),
		UserDB:   getUserDB(sess),
		FollowDB: getFollowDB(sess),
		sess:     sess,
		sqlDB:    sqlDB,
	}, nil
}

func (mdb *MySQLDB) GetSQLDB() *sql.DB {
	return mdb.sqlDB
}

func (mdb *MySQLDB) Close() error {
	return mdb.sess.Close()
}
