package models_test

import (
	"time"

	"github.com/credence-finance/backend/internal/models"
	"github.com/google/uuid"
)

func (suite *TestSuiteStandard) TestDefaultModelUUIDSet() {
	user := models.User{Name: "UUID Test", Email: "uuid@example.com"}
	suite.Require().NoError(models.DB.Create(&user).Error)

	suite.Assert().NotEqual(uuid.Nil, user.ID)
}

func (suite *TestSuiteStandard) TestDefaultModelKeepsExplicitUUID() {
	id := uuid.New()

	user := models.User{Name: "Fixed UUID", Email: "fixed-uuid@example.com"}
	user.ID = id
	suite.Require().NoError(models.DB.Create(&user).Error)

	suite.Assert().Equal(id, user.ID)
}

func (suite *TestSuiteStandard) TestDefaultModelTimestampsUTC() {
	user := suite.createTestUser("timestamps@example.com")

	var reloaded models.User
	suite.Require().NoError(models.DB.First(&reloaded, "id = ?", user.ID).Error)

	suite.Assert().Equal(time.UTC, reloaded.CreatedAt.Location())
	suite.Assert().Equal(time.UTC, reloaded.UpdatedAt.Location())
}
