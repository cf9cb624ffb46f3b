package mongo

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Connect dials the hosted document store and verifies the connection.
// credentialPath, when set, points at a PEM file holding the client
// certificate and key for X.509 authentication.
func Connect(ctx context.Context, uri, database, credentialPath string) (*mongo.Database, error) {
	clientOpts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(100).
		SetMinPoolSize(10)

	if credentialPath != "" {
		cert, err := tls.LoadX509KeyPair(credentialPath, credentialPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load store credential: %w", err)
		}
		clientOpts.SetTLSConfig(&tls.Config{Certificates: []tls.Certificate{cert}})
		clientOpts.SetAuth(options.Credential{AuthMechanism: "MONGODB-X509"})
	}

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// Ping to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client.Database(database), nil
}
