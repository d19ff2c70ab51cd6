package main

import (
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/Taher-PIO/contoso-migrate-sub002/events"
	contosohttp "github.com/Taher-PIO/contoso-migrate-sub002/http"
	"github.com/Taher-PIO/contoso-migrate-sub002/instructors"
	"github.com/Taher-PIO/contoso-migrate-sub002/sqlite"
)

var cli struct {
	Addr        string `help:"Address for the http server to listen on." env:"CONTOSOD_ADDR" default:":8080"`
	DSN         string `help:"Sqlite data source name." env:"CONTOSOD_DSN" default:"contoso.db"`
	FrontendURL string `help:"Origin of the frontend allowed through CORS." env:"CONTOSOD_FRONTEND_URL" default:"http://localhost:5173"`
}

func main() {
	kong.Parse(&cli,
		kong.Name("contosod"),
		kong.Description("University records backend for the contoso frontend."),
	)

	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	db := sqlite.NewDB(cli.DSN)
	if err := db.Open(); err != nil {
		return err
	}
	defer db.Close()

	instructorService := sqlite.NewInstructorService(db)
	courseService := sqlite.NewCourseService(db)
	enrollmentService := sqlite.NewEnrollmentService(db)

	server := contosohttp.NewServer()
	server.Addr = cli.Addr
	server.FrontendURL = cli.FrontendURL
	server.InstructorService = instructorService
	server.CourseService = courseService
	server.StudentService = sqlite.NewStudentService(db)
	server.DepartmentService = sqlite.NewDepartmentService(db)
	server.AssignmentService = instructors.NewCourseReconciler(instructorService, courseService)
	server.ViewService = instructors.NewViewAssembler(instructorService, enrollmentService)
	server.EventBus = events.NewBus()

	// graceful shutdown on interrupt.
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		log.Println("shutting down...")
		if err := server.Close(); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("listening on %s", cli.Addr)
	if err := server.Listen(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
