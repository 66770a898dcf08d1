package jobs

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"Backend-Toolbox/src/database"
	"Backend-Toolbox/src/models"

	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// HandleCloseQuestionnaireTask flips an expired questionnaire to closed. The
// Lifecycle Gate already rejects expired questionnaires on every request, so
// this only makes the stored status match what clients observe.
func HandleCloseQuestionnaireTask(ctx context.Context, t *asynq.Task) error {
	var payload CloseQuestionnairePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		log.Println("[jobs] payload decode error:", err)
		return err
	}

	id, err := primitive.ObjectIDFromHex(payload.QuestionnaireID)
	if err != nil {
		return err
	}

	var q models.Questionnaire
	err = database.QuestionnaireCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&q)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			log.Println("[jobs] questionnaire not found, possibly deleted. Skipping:", id.Hex())
			return nil
		}
		return err
	}

	if q.Status == models.QuestionnaireClosed {
		return nil
	}
	if q.ExpiresAt != nil && q.ExpiresAt.After(time.Now()) {
		// expiration was pushed back after this task was scheduled
		log.Println("[jobs] questionnaire no longer expired, skipping:", id.Hex())
		return nil
	}

	_, err = database.QuestionnaireCollection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": models.QuestionnaireClosed, "updatedAt": time.Now()}},
	)
	if err != nil {
		log.Println("[jobs] failed to close questionnaire:", err)
		return err
	}

	log.Println("[jobs] questionnaire auto-closed after expiration:", id.Hex())
	return nil
}

// StartWorker runs the asynq server beside the HTTP server. No-op when Redis
// is not configured.
func StartWorker() {
	if database.RedisURI == "" || database.RedisClient == nil {
		log.Println("⚠️ Redis not available. Job worker will not start.")
		return
	}

	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: database.RedisURI},
		asynq.Config{Concurrency: 5},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeCloseQuestionnaire, HandleCloseQuestionnaireTask)

	go func() {
		if err := srv.Run(mux); err != nil {
			log.Println("❌ Asynq worker stopped:", err)
		}
	}()
	log.Println("✅ Job worker started")
}
