package services

import (
	"time"

	appAuth "github.com/mentorhub/mentorhub/internal/app/auth"
	"github.com/mentorhub/mentorhub/internal/app/models"
	"github.com/mentorhub/mentorhub/internal/domain"
	"github.com/mentorhub/mentorhub/internal/pkg/auth"
	"github.com/rs/zerolog"
)

// testEnv wires every service over one memStore. Seeded profiles:
// a1 admin, m1 and m2 mentors, t1 and t2 mentees, x1 an inactive mentor.
type testEnv struct {
	store *memStore
	pub   *recordingPublisher

	auth        AuthService
	profiles    ProfileService
	connections ConnectionService
	mentorship  MentorshipService
	tasks       TaskService
	events      EventService
	messages    MessageService
	blog        BlogService
	dashboard   DashboardService
}

func newTestEnv(policy domain.RequestPolicy) *testEnv {
	store := newMemStore()
	store.addProfile("a1", domain.RoleAdmin, true)
	store.addProfile("m1", domain.RoleMentor, true)
	store.addProfile("m2", domain.RoleMentor, true)
	store.addProfile("t1", domain.RoleMentee, true)
	store.addProfile("t2", domain.RoleMentee, true)
	store.addProfile("x1", domain.RoleMentor, false)

	pub := &recordingPublisher{}
	log := zerolog.Nop()
	profileRepo := &fakeProfileRepo{store}
	requestRepo := &fakeMentorshipRepo{store}
	transactor := &fakeTransactor{store}
	authz := appAuth.NewAuthorizationService(profileRepo)
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  15 * time.Minute,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "mentorhub-test",
	})

	env := &testEnv{store: store, pub: pub}
	env.auth = NewAuthService(&fakeAccountRepo{store}, profileRepo, &fakeTokenRepo{store}, transactor, jwtService, log)
	env.profiles = NewProfileService(profileRepo, authz, log)
	env.connections = NewConnectionService(&fakeConnectionRepo{store}, profileRepo, authz, policy, pub, log)
	env.mentorship = NewMentorshipService(requestRepo, profileRepo, transactor, authz, policy, pub, log)
	env.tasks = NewTaskService(&fakeTaskRepo{store}, profileRepo, authz, pub, log)
	env.events = NewEventService(&fakeEventRepo{store}, authz, pub, log)
	env.messages = NewMessageService(&fakeMessageRepo{store}, profileRepo, authz, pub, log)
	env.blog = NewBlogService(&fakeBlogRepo{store}, authz, pub, log)
	env.dashboard = NewDashboardService(profileRepo, requestRepo, env.mentorship, env.tasks, env.events, authz)
	return env
}

func ids(profiles []*models.Profile) []string {
	out := make([]string, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, p.ID)
	}
	return out
}
