package api

import (
	"github.com/kaushik360/counsy/internal"
	"github.com/kaushik360/counsy/internal/advisor"
	"github.com/kaushik360/counsy/internal/storage"
)

type App interface {
	Logger() internal.Logger
	UserRepo() storage.UserRepository
	MoodRepo() storage.MoodRepository
	JournalRepo() storage.JournalRepository
	ChatRepo() storage.ChatRepository
	StreakRepo() storage.StreakRepository
	Advisor() advisor.Advisor
}

// appImpl is the straightforward wiring of repositories and the advisor.
type appImpl struct {
	logger internal.Logger
	repos  *storage.Repositories
	adv    advisor.Advisor
}

func NewApp(logger internal.Logger, repos *storage.Repositories, adv advisor.Advisor) App {
	return &appImpl{logger: logger, repos: repos, adv: adv}
}

func (a *appImpl) Logger() internal.Logger                { return a.logger }
func (a *appImpl) UserRepo() storage.UserRepository       { return a.repos.Users }
func (a *appImpl) MoodRepo() storage.MoodRepository       { return a.repos.Moods }
func (a *appImpl) JournalRepo() storage.JournalRepository { return a.repos.Journals }
func (a *appImpl) ChatRepo() storage.ChatRepository       { return a.repos.Chats }
func (a *appImpl) StreakRepo() storage.StreakRepository   { return a.repos.Streaks }
func (a *appImpl) Advisor() advisor.Advisor               { return a.adv }
