package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/stats --output domain/stats --outpkg statsmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name SeasonFetcher --dir ../domain/stats --output domain/stats --outpkg statsmock --filename season_fetcher_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name ResultsFetcher --dir ../domain/stats --output domain/stats --outpkg statsmock --filename results_fetcher_mock.go
