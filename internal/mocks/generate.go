package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/pool --output domain/pool --outpkg poolmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/entry --output domain/entry --outpkg entrymock --filename repository_mock.go
