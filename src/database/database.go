package database

import (
	"context"
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const DatabaseName = "ToolboxDB"

var (
	client     *mongo.Client
	once       sync.Once // ✅ ป้องกันการรัน ConnectMongoDB() ซ้ำ
	connectErr error

	QuestionnaireCollection *mongo.Collection
	QuestionCollection      *mongo.Collection
	OptionCollection        *mongo.Collection
	SubmissionCollection    *mongo.Collection
	AnswerCollection        *mongo.Collection
	AdminCollection         *mongo.Collection
)

// ConnectMongoDB เชื่อมต่อกับ MongoDB แค่ครั้งเดียว
func ConnectMongoDB() error {

	// โหลดค่า Environment Variables จากไฟล์ .env
	err := godotenv.Load()
	if err != nil {
		log.Println("⚠️ Warning: No .env file found")
	}

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		log.Fatal("❌ MONGO_URI environment variable not set. Please create a .env file and set it.")
	}

	once.Do(func() { // ✅ Run only once
		clientOptions := options.Client().ApplyURI(mongoURI)

		client, connectErr = mongo.Connect(context.TODO(), clientOptions)
		if connectErr != nil {
			log.Fatal("❌ Failed to connect to MongoDB:", connectErr)
			return
		}

		connectErr = client.Ping(context.TODO(), readpref.Primary())
		if connectErr != nil {
			log.Fatal("❌ MongoDB ping failed:", connectErr)
			return
		}

		QuestionnaireCollection = GetCollection(DatabaseName, "questionnaires")
		QuestionCollection = GetCollection(DatabaseName, "questions")
		OptionCollection = GetCollection(DatabaseName, "options")
		SubmissionCollection = GetCollection(DatabaseName, "submissions")
		AnswerCollection = GetCollection(DatabaseName, "answers")
		AdminCollection = GetCollection(DatabaseName, "admins")

		if err := EnsureIndexes(context.TODO()); err != nil {
			log.Fatal("❌ Failed to create indexes:", err)
		}

		log.Println("✅ MongoDB connected successfully")
	})

	return connectErr
}

// EnsureIndexes creates the indexes the engine relies on. The unique partial
// index on (questionnaireId, submitterHash) turns a racing duplicate
// submission into a duplicate-key error instead of a second row.
func EnsureIndexes(ctx context.Context) error {
	_, err := SubmissionCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "questionnaireId", Value: 1},
			{Key: "submitterHash", Value: 1},
		},
		Options: options.Index().
			SetName("uniq_questionnaire_submitter").
			SetUnique(true).
			SetPartialFilterExpression(bson.M{"submitterHash": bson.M{"$exists": true}}),
	})
	if err != nil {
		return err
	}

	_, err = QuestionCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "questionnaireId", Value: 1},
			{Key: "sequence", Value: 1},
		},
		Options: options.Index().SetName("questionnaire_sequence"),
	})
	if err != nil {
		return err
	}

	_, err = AnswerCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "submissionId", Value: 1}},
		Options: options.Index().SetName("answers_by_submission"),
	})
	return err
}

// GetClient คืน mongo client สำหรับใช้ transaction sessions
func GetClient() *mongo.Client {
	if client == nil {
		log.Fatal("❌ MongoDB client is nil")
	}
	return client
}

// GetCollection รับ Collection จาก MongoDB
func GetCollection(dbName, collectionName string) *mongo.Collection {
	if client == nil {
		log.Fatal("❌ MongoDB client is nil")
	}
	return client.Database(dbName).Collection(collectionName)
}
