package main

import (
	"log"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"

	echoapi "github.com/HIKARU0627/Kadai-Manager-web-sub000/apps/api/echo"
	"github.com/HIKARU0627/Kadai-Manager-web-sub000/core"
	"github.com/HIKARU0627/Kadai-Manager-web-sub000/core/lms"
	logsvc "github.com/HIKARU0627/Kadai-Manager-web-sub000/services/logger"
	sakaisvc "github.com/HIKARU0627/Kadai-Manager-web-sub000/services/sakai"
	"github.com/HIKARU0627/Kadai-Manager-web-sub000/storage/database"
	sqlxrepos "github.com/HIKARU0627/Kadai-Manager-web-sub000/storage/database/sqlx"
)

func main() {
	conf := core.NewConfig()

	std := log.New(os.Stdout, conf.AppName+" : ", log.LstdFlags|log.Lshortfile)
	logger := logsvc.NewRollbarLogger(std, conf)
	logger.Enable(!conf.Debug)

	// validation
	enLocale := en.New()
	translator, _ := ut.New(enLocale, enLocale).GetTranslator("en")
	validate := validator.New()
	core.InitValidators(validate, translator)

	// set up DB
	if conf.Debug {
		errAndDie(database.CreateIfNotExist(conf))
	}
	db, err := database.Open(conf)
	errAndDie(err)
	defer func() { _ = db.Close() }()
	errAndDie(database.Ping(db))
	errAndDie(database.Migrate(db))
	sdb := sqlx.NewDb(db, conf.Database.Engine)

	// set up services
	lmsSvc := lms.NewService(
		sakaisvc.NewClient(conf),
		sqlxrepos.NewCredentialRepository(sdb),
		sqlxrepos.NewSubjectRepository(sdb),
		sqlxrepos.NewTaskRepository(sdb),
		sqlxrepos.NewNoteRepository(sdb),
		logger,
	)

	// start API server
	app := echoapi.NewServer(&echoapi.Options{
		Addr:       conf.Server.Addr(),
		Conf:       conf,
		Logger:     logger,
		LMSSvc:     lmsSvc,
		Validate:   validate,
		Translator: translator,
	})
	app.Start()
}

func errAndDie(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
