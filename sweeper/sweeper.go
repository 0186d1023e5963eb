package sweeper

import (
	"context"
	"log"
	"time"

	"solstice/db"
	"solstice/models"
	"solstice/reservations"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Sweeper reclaims capacity from pending reservations whose grace window
// has lapsed. Each expired reservation is restored and deleted in its own
// transaction, guarded on status=pending so a payment submitted mid-sweep
// wins and the restore aborts.
type Sweeper struct {
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
}

func New(interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Sweeper{
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start runs the sweep loop until Stop is called or ctx is cancelled.
func (s *Sweeper) Start(ctx context.Context) {
	go func() {
		defer close(s.done)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		log.Printf("sweeper: started, interval %s", s.interval)
		for {
			select {
			case <-ticker.C:
				if n, err := s.sweep(ctx); err != nil {
					log.Printf("sweeper: sweep failed: %v", err)
				} else if n > 0 {
					log.Printf("sweeper: released %d expired reservations", n)
				}
			case <-s.stop:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop halts the loop and waits for an in-flight sweep to finish.
func (s *Sweeper) Stop() {
	close(s.stop)
	<-s.done
}

func (s *Sweeper) sweep(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	cursor, err := db.ReservationsCollection.Find(ctx, bson.M{
		"status":    models.StatusPending,
		"expiresat": bson.M{"$lte": time.Now()},
	})
	if err != nil {
		return 0, err
	}

	var expired []models.Reservation
	if err := cursor.All(ctx, &expired); err != nil {
		return 0, err
	}

	released := 0
	for i := range expired {
		if err := s.release(ctx, &expired[i]); err != nil {
			log.Printf("sweeper: could not release reservation %s: %v", expired[i].ReservationID, err)
			continue
		}
		released++
	}
	return released, nil
}

func (s *Sweeper) release(ctx context.Context, res *models.Reservation) error {
	session, err := db.Client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		// Delete first with the pending guard; zero matches means a
		// payment landed since the scan and the hold must stand.
		del, err := db.ReservationsCollection.DeleteOne(sc, bson.M{
			"reservationid": res.ReservationID,
			"status":        models.StatusPending,
		})
		if err != nil {
			return nil, err
		}
		if del.DeletedCount == 0 {
			return nil, nil
		}

		if err := reservations.RestoreCapacity(sc, res); err != nil {
			return nil, err
		}
		return nil, nil
	})
	return err
}
