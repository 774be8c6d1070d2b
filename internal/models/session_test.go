package models_test

import (
	"github.com/credence-finance/backend/internal/models"
)

func (suite *TestSuiteStandard) TestSessionUser() {
	user := suite.createTestUser("session@example.com")

	session := models.Session{Token: "test-token", UserID: user.ID}
	suite.Require().NoError(models.DB.Create(&session).Error)

	resolved, err := models.SessionUser(models.DB, "test-token")
	suite.Require().NoError(err)
	suite.Assert().Equal(user.ID, resolved.ID)
	suite.Assert().Equal(user.Email, resolved.Email)
}

func (suite *TestSuiteStandard) TestSessionUserUnknownToken() {
	_, err := models.SessionUser(models.DB, "not-a-session")
	suite.Assert().ErrorIs(err, models.ErrSessionInvalid)
}
