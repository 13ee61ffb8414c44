package testutils

import (
	"context"
	"log"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/mww/dreamsquad/containers"
	"github.com/mww/dreamsquad/db"
	"github.com/mww/dreamsquad/model"
)

var (
	BukayoSaka = &model.Player{
		ExternalID: "7784",
		Name:       "Bukayo Saka",
		Club:       "Arsenal",
		Position:   model.POS_FWD,
		Value:      model.NewMoney(9.0),
	}
	ErlingHaaland = &model.Player{
		ExternalID: "8004",
		Name:       "Erling Haaland",
		Club:       "Manchester City",
		Position:   model.POS_FWD,
		Value:      model.NewMoney(14.5),
	}
	VirgilVanDijk = &model.Player{
		ExternalID: "3319",
		Name:       "Virgil van Dijk",
		Club:       "Liverpool",
		Position:   model.POS_DEF,
		Value:      model.NewMoney(6.5),
	}
	AlissonBecker = &model.Player{
		ExternalID: "3188",
		Name:       "Alisson Becker",
		Club:       "Liverpool",
		Position:   model.POS_GK,
		Value:      model.NewMoney(5.5),
	}
	MartinOdegaard = &model.Player{
		ExternalID: "7763",
		Name:       "Martin Odegaard",
		Club:       "Arsenal",
		Position:   model.POS_MID,
		Value:      model.NewMoney(8.5),
	}
	ColePalmer = &model.Player{
		ExternalID: "8433",
		Name:       "Cole Palmer",
		Club:       "Chelsea",
		Position:   model.POS_MID,
		Value:      model.NewMoney(10.5),
	}
)

type TestDB struct {
	container *containers.DBContainer
	DB        db.DB
	Clock     clock.Clock
}

func NewTestDB() *TestDB {
	container := containers.NewDBContainer()
	clock := clock.New()
	ctx := context.Background()

	if err := db.Migrate(ctx, container.ConnectionString()); err != nil {
		log.Fatalf("error migrating db in test container: %v", err)
	}

	db, err := db.New(ctx, container.ConnectionString(), clock)
	if err != nil {
		log.Fatalf("error connecting to db in test container: %v", err)
	}

	if err := InsertTestPlayers(db); err != nil {
		log.Fatalf("error populating db in test container: %v", err)
	}

	return &TestDB{
		container: container,
		DB:        db,
		Clock:     clock,
	}
}

func (db *TestDB) ConnectionString() string {
	return db.container.ConnectionString()
}

func (db *TestDB) Shutdown() {
	db.DB.Close()
	db.container.Shutdown()
}

// TestPlayers are the seeded catalog. Their IDs are filled in once
// InsertTestPlayers has run.
func TestPlayers() []*model.Player {
	return []*model.Player{
		BukayoSaka,
		ErlingHaaland,
		VirgilVanDijk,
		AlissonBecker,
		MartinOdegaard,
		ColePalmer,
	}
}

func InsertTestPlayers(d db.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	tx, err := d.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, p := range TestPlayers() {
		if _, err := tx.SavePlayer(ctx, p); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
