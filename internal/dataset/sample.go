// Package dataset supplies candidate concerts: a fixed sample pool and
// YAML/JSON files on disk.
package dataset

import "github.com/victorezeilo/TDD-Prompt-Engineering/internal/domain/model"

var sample = []model.Concert{
	{Artist: "Taylor Swift", Date: "2025-06-10", Location: "Stockholm", Latitude: 59.3293, Longitude: 18.0686},
	{Artist: "Taylor Swift", Date: "2025-07-15", Location: "Copenhagen", Latitude: 55.6761, Longitude: 12.5683},
	{Artist: "Taylor Swift", Date: "2025-05-20", Location: "Oslo", Latitude: 59.9139, Longitude: 10.7522},
	{Artist: "Ed Sheeran", Date: "2025-06-05", Location: "Gothenburg", Latitude: 57.7089, Longitude: 11.9746},
	{Artist: "Coldplay", Date: "2025-06-05", Location: "Stockholm", Latitude: 59.3293, Longitude: 18.0686},
	{Artist: "Adele", Date: "2025-06-15", Location: "Oslo", Latitude: 59.9139, Longitude: 10.7522},
	{Artist: "Beyoncé", Date: "2025-06-20", Location: "Copenhagen", Latitude: 55.6761, Longitude: 12.5683},
	{Artist: "The Weeknd", Date: "2025-06-25", Location: "Stockholm", Latitude: 59.3293, Longitude: 18.0686},
	{Artist: "Justin Bieber", Date: "2025-07-01", Location: "Malmö", Latitude: 55.6050, Longitude: 13.0038},
	{Artist: "BTS", Date: "2025-07-01", Location: "Copenhagen", Latitude: 55.6761, Longitude: 12.5683},
	{Artist: "Dua Lipa", Date: "2025-07-01", Location: "Oslo", Latitude: 59.9139, Longitude: 10.7522},
	{Artist: "Billie Eilish", Date: "2025-07-10", Location: "Stockholm", Latitude: 59.3293, Longitude: 18.0686},
	{Artist: "Billie Eilish", Date: "2025-08-05", Location: "Oslo", Latitude: 59.9139, Longitude: 10.7522},
	{Artist: "Imagine Dragons", Date: "2025-08-15", Location: "Stockholm", Latitude: 59.3293, Longitude: 18.0686},
	{Artist: "Bruno Mars", Date: "2025-08-20", Location: "Copenhagen", Latitude: 55.6761, Longitude: 12.5683},
	{Artist: "Post Malone", Date: "2025-08-25", Location: "Gothenburg", Latitude: 57.7089, Longitude: 11.9746},
	{Artist: "Ariana Grande", Date: "2025-09-01", Location: "Oslo", Latitude: 59.9139, Longitude: 10.7522},
	{Artist: "Drake", Date: "2025-09-10", Location: "Stockholm", Latitude: 59.3293, Longitude: 18.0686},
	{Artist: "Lady Gaga", Date: "2025-09-15", Location: "Copenhagen", Latitude: 55.6761, Longitude: 12.5683},
	{Artist: "Lady Gaga", Date: "2025-09-05", Location: "Gothenburg", Latitude: 57.7089, Longitude: 11.9746},
	{Artist: "Rihanna", Date: "2025-09-20", Location: "Stockholm", Latitude: 59.3293, Longitude: 18.0686},
	{Artist: "Rihanna", Date: "2025-10-05", Location: "Oslo", Latitude: 59.9139, Longitude: 10.7522},
	{Artist: "Kendrick Lamar", Date: "2025-07-25", Location: "London", Latitude: 51.5074, Longitude: -0.1278},
	{Artist: "Metallica", Date: "2025-08-01", Location: "Berlin", Latitude: 52.5200, Longitude: 13.4050},
	{Artist: "The Rolling Stones", Date: "2025-08-10", Location: "Paris", Latitude: 48.8566, Longitude: 2.3522},
	{Artist: "Foo Fighters", Date: "2025-09-25", Location: "Amsterdam", Latitude: 52.3676, Longitude: 4.9041},
}

// Sample returns a fresh copy of the built-in concert pool.
func Sample() []model.Concert {
	out := make([]model.Concert, len(sample))
	copy(out, sample)
	return out
}
