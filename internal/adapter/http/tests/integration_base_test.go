//go:build integration

package tests

import (
	"context"
	"fmt"
	"os"
	"strings"

	dbadapter "taskmanager/internal/adapter/db"
	"taskmanager/internal/config"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/suite"
)

type IntegrationSuiteBase struct {
	suite.Suite

	DB   *sqlx.DB
	conf *config.Config
}

func (s *IntegrationSuiteBase) SetupSuite() {
	s.T().Setenv("MYSQL_DATABASE", envDatabaseName())

	conf, err := config.LoadConfig()
	s.Require().NoError(err)
	s.conf = conf

	ctx := context.Background()
	if err := dbadapter.EnsureDatabase(ctx, conf); err != nil {
		s.T().Skipf("skipping integration suite: could not reach mysql: %v", err)
	}

	db, err := dbadapter.ConnectDB(ctx, conf)
	s.Require().NoError(err)
	s.DB = db
}

func (s *IntegrationSuiteBase) TearDownSuite() {
	if s.DB == nil {
		return
	}
	if strings.HasSuffix(s.conf.DbName, "_test") {
		_, err := s.DB.Exec(fmt.Sprintf("DROP DATABASE IF EXISTS `%s`", s.conf.DbName))
		s.Require().NoError(err)
	}
	s.Require().NoError(s.DB.Close())
}

func (s *IntegrationSuiteBase) ResetDatabase() {
	_, err := s.DB.Exec("DROP TABLE IF EXISTS tasks")
	s.Require().NoError(err)
	s.Require().NoError(dbadapter.Migrate(context.Background(), s.DB))
}

func envDatabaseName() string {
	if name := os.Getenv("MYSQL_TEST_DATABASE"); name != "" {
		return name
	}
	return "task_manager_test"
}
