package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"alumni-directory/config"
	"alumni-directory/database"
	"alumni-directory/dto"
	"alumni-directory/internal/auth"
	"alumni-directory/internal/models"
	"alumni-directory/internal/photostore"
	"alumni-directory/internal/repository"
	"alumni-directory/internal/services"
)

var (
	firstNames = []string{"Olivia", "Liam", "Emma", "Noah", "Ava", "Mason", "Sophia", "Ethan", "Mia", "Lucas", "Harper", "Logan", "Ella", "James", "Grace"}
	lastNames  = []string{"Smith", "Johnson", "Brown", "Garcia", "Miller", "Davis", "Martinez", "Wilson", "Anderson", "Taylor", "Thomas", "Moore", "Clark", "Lewis"}
	companies  = []string{
		"Google", "Microsoft", "Amazon", "Apple", "Meta", "Netflix", "Tesla",
		"Goldman Sachs", "JPMorgan", "Morgan Stanley", "Deloitte", "PwC",
		"McKinsey", "BCG", "Bain", "Accenture", "IBM", "Oracle", "Salesforce",
	}
	jobTitles = []string{
		"Software Engineer", "Data Scientist", "Product Manager", "Financial Analyst",
		"Consultant", "Marketing Manager", "Operations Manager", "Business Analyst",
		"UX Designer", "Sales Manager", "Account Executive", "Project Manager",
	}
	fieldsOfStudy = [][]string{
		{"Finance"}, {"Marketing"}, {"Accounting"}, {"Economics"},
		{"Finance", "Economics"}, {"Marketing", "Management"},
		{"Computer Science", "Business"}, {"Finance", "Mathematics"},
	}
	places = []dto.LocationInput{
		{City: "New York", State: "NY"}, {City: "San Francisco", State: "CA"}, {City: "Chicago", State: "IL"},
		{City: "Boston", State: "MA"}, {City: "Seattle", State: "WA"}, {City: "Austin", State: "TX"},
		{City: "Denver", State: "CO"}, {City: "Atlanta", State: "GA"}, {City: "Kansas City", State: "MO"},
	}
	eventNames = []string{
		"Annual Networking Gala", "Spring Career Fair", "Alumni Reunion",
		"Leadership Workshop", "Professional Development Seminar",
		"Holiday Reception", "Industry Panel Discussion", "Mentorship Mixer",
		"Alumni Golf Outing", "Virtual Networking Event",
	}
	eventLocations = []string{
		"RAC, University of Missouri, Columbia, MO",
		"Downtown Kansas City, MO",
		"Chicago Conference Center, IL",
		"Virtual Event",
		"New York City Alumni Center, NY",
	}
	photoTags = [][]string{
		{"networking", "gala", "2024"}, {"reunion", "alumni", "friends"},
		{"professional", "conference", "workshop"}, {"social", "fun", "event"},
		{"graduation", "celebration"}, {"panel", "discussion", "industry"},
	}
)

const (
	alumniPassword = "password123"
	adminUsername  = "admin_clp"
	adminPassword  = "admin123"
)

func pick[T any](r *rand.Rand, items []T) T {
	return items[r.Intn(len(items))]
}

func main() {
	alumniCount := flag.Int("alumni", 50, "number of alumni to create")
	eventCount := flag.Int("events", 10, "number of events to create")
	reservationCount := flag.Int("reservations", 30, "reservation attempts; duplicate pairs are skipped")
	photoCount := flag.Int("photos", 15, "number of photos to upload")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	flag.Parse()

	cfg := config.LoadConfig()
	if cfg.MongoURI == "" {
		log.Fatal("please set MONGO_URI to point to your MongoDB instance")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client, err := database.ConnectMongo(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer database.DisconnectMongo(client)

	db := client.Database(cfg.MongoDB)
	store := repository.NewMongoStore(db)
	repos := repository.New(store)
	files := photostore.NewGridFSStore(db)

	if err := reset(ctx, store, repos, files); err != nil {
		log.Fatalf("reset: %v", err)
	}

	secret := cfg.JWTSecret
	if secret == "" {
		secret = uuid.NewString()
	}
	svc := services.New(repos, files, photostore.NewPolicy(cfg.MaxFileSize), auth.NewManager(secret, cfg.TokenTTL))
	r := rand.New(rand.NewSource(*seed))

	alumni, err := seedAlumni(ctx, svc, r, *alumniCount)
	if err != nil {
		log.Fatalf("alumni: %v", err)
	}
	events, err := seedEvents(ctx, svc, r, alumni, *eventCount)
	if err != nil {
		log.Fatalf("events: %v", err)
	}
	reservations, err := seedReservations(ctx, svc, r, alumni, events, *reservationCount)
	if err != nil {
		log.Fatalf("reservations: %v", err)
	}
	photos, err := seedPhotos(ctx, svc, r, alumni, events, *photoCount)
	if err != nil {
		log.Fatalf("photos: %v", err)
	}
	if _, err := svc.Admins.Create(ctx, dto.AdminInput{
		Username: adminUsername,
		Password: adminPassword,
		Role:     models.RoleSuperAdmin,
		Email:    "admin@clp.org",
	}); err != nil {
		log.Fatalf("admin: %v", err)
	}

	fmt.Println("sample data created")
	fmt.Printf("  alumni:       %d\n", len(alumni))
	fmt.Printf("  events:       %d\n", len(events))
	fmt.Printf("  reservations: %d\n", reservations)
	fmt.Printf("  photos:       %d\n", photos)
	fmt.Printf("  admin:        %s / %s\n", adminUsername, adminPassword)
	fmt.Printf("  alumni login: any seeded email / %s\n", alumniPassword)
}

// reset empties every collection, the counters and the photo bucket.
func reset(ctx context.Context, store repository.Store, repos *repository.Repositories, files photostore.Store) error {
	photos, err := repos.Photos.All(ctx)
	if err != nil {
		return err
	}
	for _, p := range photos {
		if err := files.Delete(ctx, p.FileID); err != nil && !errors.Is(err, photostore.ErrNotFound) {
			return err
		}
	}
	for _, step := range []func(context.Context) error{
		repos.Alumni.Reset,
		repos.Admins.Reset,
		repos.Events.Reset,
		repos.Reservations.Reset,
		repos.Photos.Reset,
		store.Collection(repository.CounterCollection).DeleteAll,
	} {
		if err := step(ctx); err != nil {
			return err
		}
	}
	return nil
}

func seedAlumni(ctx context.Context, svc *services.Services, r *rand.Rand, n int) ([]*models.Alumni, error) {
	out := make([]*models.Alumni, 0, n)
	for i := 0; i < n; i++ {
		first, last := pick(r, firstNames), pick(r, lastNames)
		year := 2015 + r.Intn(10)
		home := pick(r, places)

		var history []dto.EmploymentHistoryInput
		for j := r.Intn(4); j > 0; j-- {
			start := time.Date(year, time.Month(5+r.Intn(4)), 1+r.Intn(28), 0, 0, 0, 0, time.UTC)
			end := start.AddDate(0, 0, 365+r.Intn(731))
			loc := pick(r, places)
			history = append(history, dto.EmploymentHistoryInput{
				Employer:        pick(r, companies),
				EmploymentTitle: pick(r, jobTitles),
				StartDate:       start.Format("2006-01-02"),
				EndDate:         end.Format("2006-01-02"),
				Location:        &loc,
			})
		}

		a, err := svc.Alumni.Create(ctx, dto.AlumniInput{
			Name:              first + " " + last,
			GraduationYear:    year,
			FieldOfStudy:      pick(r, fieldsOfStudy),
			Address:           fmt.Sprintf("%d Main St, %s, %s", 100+r.Intn(9900), home.City, home.State),
			Phone:             fmt.Sprintf("555-%03d-%04d", r.Intn(1000), r.Intn(10000)),
			Email:             fmt.Sprintf("%s.%s%d@example.com", strings.ToLower(first), strings.ToLower(last), i+1),
			Password:          alumniPassword,
			EmploymentStatus:  pick(r, []string{"Full-Time", "Part-Time", "Self-Employed"}),
			Employer:          pick(r, companies),
			EmployerLocation:  &home,
			EmploymentTitle:   pick(r, jobTitles),
			EmploymentHistory: history,
		})
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func seedEvents(ctx context.Context, svc *services.Services, r *rand.Rand, alumni []*models.Alumni, n int) ([]*models.Event, error) {
	if len(alumni) == 0 {
		return nil, nil
	}
	out := make([]*models.Event, 0, n)
	for i := 0; i < n; i++ {
		date := time.Now().UTC().AddDate(0, 0, r.Intn(361)-180)
		e, err := svc.Events.Create(ctx, dto.EventInput{
			Name:        fmt.Sprintf("%s %d", pick(r, eventNames), date.Year()),
			Description: "An evening for alumni to reconnect and meet current members.",
			Location:    pick(r, eventLocations),
			Date:        date.Format("2006-01-02"),
			Time:        fmt.Sprintf("%d:%s", 17+r.Intn(3), pick(r, []string{"00", "30"})),
			Capacity:    50 + r.Intn(151),
			OrganizerID: pick(r, alumni).AlumniID,
		})
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// seedReservations books random alumni onto random events and records each
// event in the attendee's Events_history.
func seedReservations(ctx context.Context, svc *services.Services, r *rand.Rand, alumni []*models.Alumni, events []*models.Event, attempts int) (int, error) {
	if len(alumni) == 0 || len(events) == 0 {
		return 0, nil
	}
	type pair struct{ alumni, event string }
	used := make(map[pair]bool)
	attended := make(map[*models.Alumni][]string)
	created := 0

	for i := 0; i < attempts; i++ {
		a, e := pick(r, alumni), pick(r, events)
		key := pair{a.AlumniID, e.EventID}
		if used[key] {
			continue
		}
		used[key] = true

		attendees := 1 + r.Intn(3)
		if _, err := svc.Reservations.Create(ctx, dto.ReservationInput{
			AlumniID:          a.AlumniID,
			EventID:           e.EventID,
			NumberOfAttendees: &attendees,
			PaymentAmount:     pick(r, []float64{0, 25, 50, 75, 100}),
			PaymentStatus:     pick(r, []string{models.PaymentPaid, models.PaymentPending}),
			PaymentInformation: &dto.PaymentInformationInput{
				PaymentMethod:  "Credit Card",
				CardType:       pick(r, []string{"Visa", "Mastercard", "Amex"}),
				LastFourDigits: fmt.Sprintf("%04d", 1000+r.Intn(9000)),
				TransactionID:  "TXN-" + uuid.NewString()[:8],
				PaymentDate:    e.Date.AddDate(0, 0, -(1 + r.Intn(30))).Format("2006-01-02"),
			},
		}); err != nil {
			return created, err
		}
		attended[a] = append(attended[a], e.EventID)
		created++
	}

	for a, ids := range attended {
		if _, err := svc.Alumni.Update(ctx, a.ID.Hex(), dto.AlumniUpdateInput{EventsHistory: ids}); err != nil {
			return created, err
		}
	}
	return created, nil
}

// seedPhotos uploads small generated images; about a third are not tied to an event.
func seedPhotos(ctx context.Context, svc *services.Services, r *rand.Rand, alumni []*models.Alumni, events []*models.Event, n int) (int, error) {
	if len(alumni) == 0 {
		return 0, nil
	}
	for i := 0; i < n; i++ {
		img, err := swatch(r)
		if err != nil {
			return i, err
		}
		var eventID string
		if len(events) > 0 && r.Float64() > 0.3 {
			eventID = pick(r, events).EventID
		}
		if _, err := svc.Photos.Upload(ctx, services.UploadRequest{
			AlumniID:     pick(r, alumni).AlumniID,
			EventID:      eventID,
			Tags:         pick(r, photoTags),
			FileName:     fmt.Sprintf("clp_photo_%d.png", i+1),
			DeclaredType: "image/png",
			Size:         int64(len(img)),
			Body:         bytes.NewReader(img),
		}); err != nil {
			return i, err
		}
	}
	return n, nil
}

func swatch(r *rand.Rand) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	fill := color.RGBA{R: uint8(r.Intn(256)), G: uint8(r.Intn(256)), B: uint8(r.Intn(256)), A: 255}
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, fill)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
