package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"paper-desk/api"
	"paper-desk/config"
	"paper-desk/models"
	"paper-desk/services"
	"paper-desk/storage"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var statusChangesCounter prometheus.Counter

func init() {
	statusChangesCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "paper_desk_status_changes_total",
			Help: "Total number of status transitions observed in watch mode.",
		},
	)
	prometheus.MustRegister(statusChangesCounter)
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: paper-desk <command> [flags]

commands:
  submit       upload a new paper
  status       look up a paper by tracking code and email
  reviewer     list assigned papers and submit reviews
  admin        manage papers, reviewers and anonymity
  logs         show the audit trail
  submissions  list tracking codes recorded on this machine
  watch        poll a paper's status on a schedule`)
	os.Exit(2)
}

func main() {
	logging, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logging.Sync()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("Config load error", zap.Error(err))
	}

	if len(os.Args) < 2 {
		usage()
	}

	client := api.NewClient(cfg, logging)

	ledger, err := storage.Open(cfg.LedgerPath)
	if err != nil {
		logging.Fatal("Failed to open local ledger", zap.Error(err))
	}

	switch os.Args[1] {
	case "submit":
		runSubmit(client, ledger, logging, os.Args[2:])
	case "status":
		runStatus(client, ledger, logging, os.Args[2:])
	case "reviewer":
		runReviewer(client, ledger, logging, os.Args[2:])
	case "admin":
		runAdmin(client, ledger, logging, os.Args[2:])
	case "logs":
		runLogs(client, os.Args[2:])
	case "submissions":
		runSubmissions(ledger)
	case "watch":
		runWatch(cfg, client, logging, os.Args[2:])
	default:
		usage()
	}
}

// userMessage maps an error to the banner text the screen shows. The two
// network error classes stay distinguishable: application failures carry
// the server message, everything else is a connection failure. Local
// validation errors read as entered.
func userMessage(err error) string {
	if apiErr := api.AsAPIError(err); apiErr != nil {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return "The server rejected the request."
	}
	if services.IsLocal(err) {
		return err.Error()
	}
	return "Connection to the server failed."
}

func banner(err error) {
	fmt.Fprintln(os.Stderr, "error:", userMessage(err))
}

func runSubmit(client *api.Client, ledger *storage.Ledger, logging *zap.Logger, args []string) {
	fs := flag.NewFlagSet("submit", flag.ExitOnError)
	email := fs.String("email", "", "submission email")
	title := fs.String("title", "", "paper title")
	authors := fs.String("authors", "", "author list, comma separated")
	institution := fs.String("institution", "", "institution")
	file := fs.String("file", "", "path to the PDF")
	fs.Parse(args)

	form := services.SubmitForm{
		Email:       *email,
		Title:       *title,
		Authors:     *authors,
		Institution: *institution,
	}
	if *file != "" {
		f, err := os.Open(*file)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error: cannot open file:", err)
			os.Exit(1)
		}
		defer f.Close()
		form.File = f
		form.FileName = filepath.Base(*file)
	}

	service := services.NewSubmitService(client, ledger, logging)
	code, err := service.Submit(context.Background(), form)
	if err != nil {
		banner(err)
		os.Exit(1)
	}
	fmt.Println("Your paper was uploaded.")
	fmt.Println("Tracking code:", code)
	fmt.Println("Keep it together with your email to look up the status.")
}

func runStatus(client *api.Client, ledger *storage.Ledger, logging *zap.Logger, args []string) {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	code := fs.String("code", "", "tracking code")
	email := fs.String("email", "", "submission email")
	pdfOut := fs.String("pdf", "", "write the PDF to this path")
	fs.Parse(args)

	session := services.NewAuthorSession(client, ledger, logging)
	paper, err := session.Lookup(context.Background(), *code, *email)
	if err != nil {
		// The lookup screen's fallback for an unexplained rejection.
		if apiErr := api.AsAPIError(err); apiErr != nil && apiErr.Message == "" {
			fmt.Fprintln(os.Stderr, "error: Paper not found.")
			os.Exit(1)
		}
		banner(err)
		os.Exit(1)
	}

	if session.Stale() {
		fmt.Println("The server could not be reached; showing the last cached copy.")
		fmt.Println()
	}
	printPaper(paper)
	if reviews := session.Reviews(); len(reviews) > 0 {
		fmt.Println("\nReviews:")
		for _, review := range reviews {
			fmt.Printf("  %s (%s):\n    %s\n", review.Reviewer, review.CreatedAt.Format(time.RFC822), review.Comments)
		}
	}
	if messages := session.Messages(); len(messages) > 0 {
		fmt.Println("\nMessages:")
		printMessages(messages, paper.Email)
	}
	if session.CanRevise() {
		fmt.Println("\nThis paper was rejected; you may revise it with a new title or PDF.")
	}

	if *pdfOut != "" {
		data, err := session.DownloadPDF(context.Background())
		if err != nil {
			banner(err)
			os.Exit(1)
		}
		if err := os.WriteFile(*pdfOut, data, 0o644); err != nil {
			fmt.Fprintln(os.Stderr, "error: cannot write PDF:", err)
			os.Exit(1)
		}
		fmt.Println("\nPDF written to", *pdfOut)
	}
}

func runReviewer(client *api.Client, ledger *storage.Ledger, logging *zap.Logger, args []string) {
	fs := flag.NewFlagSet("reviewer", flag.ExitOnError)
	name := fs.String("name", "", "reviewer name")
	fs.Parse(args)

	session := services.NewReviewerSession(client, ledger, logging)
	if err := session.Load(context.Background(), *name); err != nil {
		banner(err)
		os.Exit(1)
	}

	papers := session.Papers()
	if len(papers) == 0 {
		fmt.Println("No papers assigned.")
		return
	}
	for _, paper := range papers {
		fmt.Printf("%s  %-40s  %s\n", paper.ID, paper.Title, paper.Status.Label())
	}

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("\npaper id to review (empty to quit): ")
		paperID := readLine(reader)
		if paperID == "" {
			return
		}
		if session.Paper(paperID) == nil {
			fmt.Println("No such assigned paper.")
			continue
		}

		fmt.Print("new status (UnderReview/Accepted/Rejected): ")
		status := models.Status(readLine(reader))
		fmt.Print("comment: ")
		comment := readLine(reader)

		err := session.SubmitReview(context.Background(), paperID, comment, status)
		if err != nil {
			banner(err)
			continue
		}
		fmt.Printf("Review saved; paper is now %s.\n", session.Paper(paperID).Status.Label())
	}
}

func runAdmin(client *api.Client, ledger *storage.Ledger, logging *zap.Logger, args []string) {
	fs := flag.NewFlagSet("admin", flag.ExitOnError)
	search := fs.String("search", "", "filter papers by title, author or email")
	fs.Parse(args)

	session := services.NewAdminSession(client, ledger, logging)
	if err := session.Refresh(context.Background()); err != nil {
		banner(err)
		os.Exit(1)
	}

	for _, paper := range session.SearchPapers(*search) {
		fmt.Printf("%s  %-30s  %-20s  %-20s  %-12s  %s\n",
			paper.ID, paper.Title, paper.DisplayAuthors(), paper.DisplayEmail(),
			paper.Status.Label(), paper.Reviewer)
	}

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("\nadmin> ")
		line := readLine(reader)
		if line == "" || line == "quit" {
			return
		}
		adminCommand(session, reader, line)
	}
}

func adminCommand(session *services.AdminSession, reader *bufio.Reader, line string) {
	ctx := context.Background()
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return
	}
	switch parts[0] {
	case "help":
		fmt.Println("commands: assign <paper>, toggle <paper> <authors|email|institution>, release <paper>, add-reviewer, reviews <paper>, quit")
	case "add-reviewer":
		fmt.Print("name: ")
		name := readLine(reader)
		fmt.Print("interest: ")
		interests := readLine(reader)
		if err := session.AddReviewer(ctx, name, interests); err != nil {
			banner(err)
			return
		}
		fmt.Println("Reviewer added.")
	case "assign":
		if len(parts) < 2 {
			fmt.Println("usage: assign <paper>")
			return
		}
		candidates, err := session.CandidateReviewers(parts[1])
		if err != nil {
			banner(err)
			return
		}
		if len(candidates) == 0 {
			fmt.Println("No matching reviewer for this paper's interests.")
			return
		}
		for _, reviewer := range candidates {
			fmt.Printf("  %d  %s (%s)\n", reviewer.ID, reviewer.Name, reviewer.Interests)
		}
		fmt.Print("reviewer id: ")
		id, err := strconv.Atoi(readLine(reader))
		if err != nil {
			fmt.Println("Not a reviewer id.")
			return
		}
		if err := session.AssignReviewer(ctx, parts[1], id); err != nil {
			banner(err)
			return
		}
		fmt.Println("Reviewer assigned.")
	case "toggle":
		if len(parts) < 3 {
			fmt.Println("usage: toggle <paper> <authors|email|institution>")
			return
		}
		field, ok := fieldByName(parts[2])
		if !ok {
			fmt.Println("Unknown field.")
			return
		}
		paper := session.Paper(parts[1])
		if paper == nil {
			fmt.Println("No such paper.")
			return
		}
		if err := session.ToggleAnonymity(ctx, parts[1], field, !paper.Flag(field)); err != nil {
			banner(err)
			return
		}
		fmt.Printf("Anonymity for %s is now %v.\n", parts[2], paper.Flag(field))
	case "release":
		if len(parts) < 2 {
			fmt.Println("usage: release <paper>")
			return
		}
		if err := session.ReleaseToAuthor(ctx, parts[1]); err != nil {
			banner(err)
			return
		}
		fmt.Println("Anonymity removed and PDF restored for the author.")
	case "reviews":
		if len(parts) < 2 {
			fmt.Println("usage: reviews <paper>")
			return
		}
		reviews, err := session.Reviews(ctx, parts[1])
		if err != nil {
			banner(err)
			return
		}
		if len(reviews) == 0 {
			fmt.Println("No reviews yet.")
			return
		}
		for _, review := range reviews {
			fmt.Printf("  %s: %s\n", review.Reviewer, review.Comments)
		}
	default:
		fmt.Println("Unknown command; try help.")
	}
}

func runLogs(client *api.Client, args []string) {
	fs := flag.NewFlagSet("logs", flag.ExitOnError)
	search := fs.String("search", "", "filter entries by event text")
	fs.Parse(args)

	screen := services.NewLogScreen(client)
	if err := screen.Refresh(context.Background()); err != nil {
		banner(err)
		os.Exit(1)
	}
	for _, entry := range screen.Search(*search) {
		fmt.Printf("%s  paper=%s  %s\n", entry.Timestamp.Format(time.RFC822), entry.ArticleID, entry.Event)
	}
}

func runSubmissions(ledger *storage.Ledger) {
	records, err := ledger.Submissions(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	for _, record := range records {
		fmt.Printf("%s  %s  %s  %s\n", record.TrackingCode, record.CreatedAt.Format("2006-01-02"), record.Email, record.Title)
	}
}

// runWatch polls one paper's status on the configured schedule and logs
// transitions, with request metrics exposed for scraping.
func runWatch(cfg *config.Config, client *api.Client, logging *zap.Logger, args []string) {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	code := fs.String("code", "", "tracking code")
	email := fs.String("email", "", "submission email")
	fs.Parse(args)

	if *code == "" || *email == "" || !services.ValidEmail(*email) {
		fmt.Fprintln(os.Stderr, "error: watch needs -code and a valid -email")
		os.Exit(1)
	}

	var lastStatus models.Status
	poll := func() {
		paper, err := client.PaperStatus(context.Background(), *email, *code)
		if err != nil {
			logging.Error("Watch poll failed", zap.Error(err))
			return
		}
		if paper.Status != lastStatus {
			logging.Info("Paper status changed",
				zap.String("tracking_code", *code),
				zap.String("from", lastStatus.Label()),
				zap.String("to", paper.Status.Label()))
			if lastStatus != "" {
				statusChangesCounter.Inc()
			}
			lastStatus = paper.Status
		}
	}
	poll()

	cronScheduler := cron.New()
	if _, err := cronScheduler.AddFunc(cfg.WatchSchedule, poll); err != nil {
		logging.Fatal("Invalid watch schedule", zap.Error(err))
	}
	cronScheduler.Start()

	router := gin.Default()
	router.Use(gin.Recovery())
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	logging.Info("Watching paper", zap.String("tracking_code", *code), zap.String("port", cfg.MetricsPort))
	srv := &http.Server{
		Addr:              ":" + cfg.MetricsPort,
		Handler:           router,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logging.Fatal("Failed to run metrics server", zap.Error(err))
	}
}

func printPaper(paper *models.Paper) {
	fmt.Println("Title:       ", paper.Title)
	fmt.Println("Authors:     ", paper.DisplayAuthors())
	fmt.Println("Institution: ", paper.DisplayInstitution())
	fmt.Printf("Status:       %s [%s]\n", paper.Status.Label(), paper.Status.Category())
	if paper.Reviewer != "" {
		fmt.Println("Reviewer:    ", paper.Reviewer)
	} else {
		fmt.Println("Reviewer:     not assigned yet")
	}
}

func printMessages(messages []models.Message, self string) {
	for _, message := range messages {
		sender := message.Sender
		if sender == self {
			sender = "You"
		}
		read := ""
		if message.Sender == self && !message.Read {
			read = " (not read)"
		}
		fmt.Printf("  %s: %s%s\n", sender, message.Text, read)
	}
}

func fieldByName(name string) (models.AnonField, bool) {
	switch name {
	case "authors":
		return models.FieldAuthors, true
	case "email":
		return models.FieldEmail, true
	case "institution":
		return models.FieldInstitution, true
	}
	return "", false
}

func readLine(reader *bufio.Reader) string {
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}
