package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sngm3741/granite-company/api/internal/domain"
	mongodoc "github.com/sngm3741/granite-company/api/internal/infrastructure/mongo"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type seedOptions struct {
	envName         string
	galleryCount    int
	reviewCount     int
	dropCollections bool
	randomSeed      int64
}

type collections struct {
	gallery             string
	reviews             string
	failedNotifications string
}

var (
	categories = []string{"Kitchen", "Bathroom", "Fireplace", "Outdoor", "Commercial"}
	materials  = []string{"Granite", "Marble", "Quartz", "Quartzite", "Soapstone"}
	locations  = []string{"Austin, TX", "Denver, CO", "Portland, OR", "Raleigh, NC", "Phoenix, AZ"}
	finishes   = []string{"Polished", "Honed", "Leathered"}
	reviewers  = []string{"alex", "sam", "jordan", "casey", "riley", "morgan", "taylor", "jamie"}
	comments   = []string{
		"The countertop install was fast and the seams are nearly invisible.",
		"Great communication from template to install.",
		"Beautiful slab selection, but scheduling took longer than expected.",
		"The crew protected our floors and cleaned up afterwards.",
		"Edge profile came out exactly like the sample.",
		"A small chip had to be repaired after install.",
	}
)

func main() {
	opts := parseFlags()

	if err := loadEnvFiles(opts.envName); err != nil {
		log.Fatalf("環境変数の読み込みに失敗しました: %v", err)
	}

	cfg := collections{
		gallery:             envOrDefault("GALLERY_COLLECTION", "gallery"),
		reviews:             envOrDefault("REVIEW_COLLECTION", "reviews"),
		failedNotifications: envOrDefault("FAILED_NOTIFICATION_COLLECTION", "failed_notifications"),
	}

	mongoURI := envOrDefault("MONGO_URI", "mongodb://localhost:27017")
	dbName := envOrDefault("MONGO_DB", "granite-company")

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("MongoDB 接続に失敗しました: %v", err)
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	db := client.Database(dbName)

	if opts.dropCollections {
		dropCollections(ctx, db, cfg)
		log.Printf("既存コレクションを削除しました")
	}

	galleryRepo := mongodoc.NewGalleryRepository(db, cfg.gallery)
	reviewRepo := mongodoc.NewReviewRepository(db, cfg.reviews)
	if err := galleryRepo.EnsureIndexes(ctx); err != nil {
		log.Fatalf("gallery インデックス作成に失敗しました: %v", err)
	}
	if err := reviewRepo.EnsureIndexes(ctx); err != nil {
		log.Fatalf("reviews インデックス作成に失敗しました: %v", err)
	}

	rng := rand.New(rand.NewSource(opts.randomSeed))

	items := generateGalleryItems(rng, opts.galleryCount)
	for i := range items {
		if err := galleryRepo.Create(ctx, &items[i]); err != nil {
			log.Fatalf("施工事例の挿入に失敗しました: %v", err)
		}
	}

	counts := map[domain.ReviewStatus]int{}
	perItem := distribute(opts.reviewCount, len(items), 0, 12, rng)
	for i, item := range items {
		for j := 0; j < perItem[i]; j++ {
			review, err := generateReview(rng, item)
			if err != nil {
				log.Fatalf("レビューの生成に失敗しました: %v", err)
			}
			if err := reviewRepo.Create(ctx, review); err != nil {
				log.Fatalf("レビューの挿入に失敗しました: %v", err)
			}
			status := randomStatus(rng)
			if status != domain.StatusPending {
				if _, err := reviewRepo.SetStatus(ctx, review.ID, status, review.CreatedAt.Add(time.Hour)); err != nil {
					log.Fatalf("レビュー状態の更新に失敗しました: %v", err)
				}
			}
			counts[status]++
		}
	}

	log.Printf("Seed 完了: gallery=%d reviews(approved=%d pending=%d rejected=%d)",
		len(items), counts[domain.StatusApproved], counts[domain.StatusPending], counts[domain.StatusRejected])
	log.Printf("Mongo: %s / %s (env=%s)", mongoURI, dbName, opts.envName)
}

func parseFlags() seedOptions {
	var opts seedOptions
	flag.StringVar(&opts.envName, "env", "local", "env ディレクトリ内の env ファイル名 (例: local, staging)")
	flag.IntVar(&opts.galleryCount, "gallery", 8, "生成する施工事例数")
	flag.IntVar(&opts.reviewCount, "reviews", 40, "生成するレビュー総数")
	flag.BoolVar(&opts.dropCollections, "drop", true, "既存コレクションを削除してから投入する")
	defaultSeed := time.Now().UnixNano()
	flag.Int64Var(&opts.randomSeed, "seed", defaultSeed, "乱数シード（再現用）")
	flag.Parse()

	if opts.galleryCount <= 0 {
		log.Fatal("gallery は 1 以上を指定してください")
	}
	if opts.reviewCount < 0 {
		opts.reviewCount = 0
	}
	return opts
}

// loadEnvFiles は env/shared.env と env/<name>.env を順に読み込む。存在しないファイルは無視する。
func loadEnvFiles(envName string) error {
	base := filepath.Clean(filepath.Join("..", "env"))
	for _, file := range []string{
		filepath.Join(base, "shared.env"),
		filepath.Join(base, fmt.Sprintf("%s.env", envName)),
	} {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Overload(file); err != nil {
			return fmt.Errorf("%s の読み込みに失敗しました: %w", file, err)
		}
	}
	return nil
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func dropCollections(ctx context.Context, db *mongo.Database, cfg collections) {
	for _, name := range []string{cfg.gallery, cfg.reviews, cfg.failedNotifications} {
		if err := db.Collection(name).Drop(ctx); err != nil {
			log.Printf("WARN: コレクション %s の削除に失敗: %v", name, err)
		}
	}
}

func generateGalleryItems(rng *rand.Rand, count int) []domain.GalleryItem {
	items := make([]domain.GalleryItem, 0, count)
	base := time.Now().UTC().AddDate(0, -count, 0)
	for i := 0; i < count; i++ {
		category := categories[rng.Intn(len(categories))]
		material := materials[rng.Intn(len(materials))]
		slug := strings.ToLower(fmt.Sprintf("%s-%s-%02d", material, category, i+1))
		item := domain.GalleryItem{
			Title:       fmt.Sprintf("%s %s Project #%d", material, category, i+1),
			Category:    category,
			Material:    material,
			Description: fmt.Sprintf("Custom %s fabrication for a %s remodel.", strings.ToLower(material), strings.ToLower(category)),
			Images: map[string]domain.GalleryImage{
				"main":   {URL: domain.ImageURL(fmt.Sprintf("https://images.example.com/gallery/%s/main.jpg", slug)), ExternalAssetID: slug + "-main", IsMain: true},
				"detail": {URL: domain.ImageURL(fmt.Sprintf("https://images.example.com/gallery/%s/detail.jpg", slug)), ExternalAssetID: slug + "-detail"},
			},
			Location: locations[rng.Intn(len(locations))],
			Specifications: []domain.Specification{
				{Key: "Thickness", Value: fmt.Sprintf("%dcm", 2+rng.Intn(2))},
				{Key: "Finish", Value: finishes[rng.Intn(len(finishes))]},
				{Key: "Area", Value: fmt.Sprintf("%d sq ft", 20+rng.Intn(80))},
			},
			CreatedAt: base.AddDate(0, i, rng.Intn(20)),
		}
		if rng.Intn(3) == 0 {
			item.Client = "Private residence"
		}
		if err := item.Normalize(); err != nil {
			log.Fatalf("施工事例データが不正です: %v", err)
		}
		items = append(items, item)
	}
	return items
}

func generateReview(rng *rand.Rand, item domain.GalleryItem) (*domain.Review, error) {
	user := reviewers[rng.Intn(len(reviewers))]
	created := item.CreatedAt.Add(time.Duration(24+rng.Intn(24*60)) * time.Hour)
	return domain.NewReview(
		item.ID,
		"seed-"+user,
		user+"@example.com",
		comments[rng.Intn(len(comments))],
		1+rng.Intn(5),
		created,
	)
}

// randomStatus は承認済みが多めになるように状態を選ぶ。
func randomStatus(rng *rand.Rand) domain.ReviewStatus {
	switch n := rng.Intn(10); {
	case n < 6:
		return domain.StatusApproved
	case n < 9:
		return domain.StatusPending
	default:
		return domain.StatusRejected
	}
}

func distribute(total, buckets, minPerBucket, maxPerBucket int, rng *rand.Rand) []int {
	if buckets <= 0 {
		return nil
	}
	if maxPerBucket < minPerBucket {
		maxPerBucket = minPerBucket
	}
	counts := make([]int, buckets)
	for i := range counts {
		counts[i] = minPerBucket
	}
	remaining := total - minPerBucket*buckets
	if capacity := (maxPerBucket - minPerBucket) * buckets; remaining > capacity {
		remaining = capacity
	}
	for remaining > 0 {
		i := rng.Intn(buckets)
		if counts[i] >= maxPerBucket {
			continue
		}
		counts[i]++
		remaining--
	}
	return counts
}
