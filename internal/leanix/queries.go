package leanix

// GraphQL query text for the fact-sheet repository. The shapes here are what
// the Decode functions in types.go flatten.

const queryPlatformByID = `
query GetPlatformById($id: ID!) {
    factSheet(id: $id) {
        id
        name
        displayName
        type
        description
        ... on TechPlatform {
            acronym
            relTechPlatformToApplication {
                edges {
                    node {
                        factSheet {
                            id
                            name
                            displayName
                            description
                            ... on Application {
                                acronym
                                relApplicationToUserGroup {
                                    edges {
                                        node {
                                            factSheet {
                                                id
                                                name
                                                displayName
                                                description
                                                ... on UserGroup {
                                                    acronym
                                                }
                                            }
                                        }
                                    }
                                }
                            }
                        }
                    }
                }
            }
        }
    }
}
`

const queryInterfaces = `
query GetInterfaces($limit: Int!) {
    allFactSheets(factSheetType: Interface, first: $limit) {
        totalCount
        edges {
            node {
                id
                name
                displayName
                type
                description
                ... on Interface {
                    acronym
                    relInterfaceToProviderApplication {
                        edges {
                            node {
                                factSheet {
                                    id
                                    name
                                    displayName
                                }
                            }
                        }
                    }
                    relInterfaceToConsumerApplication {
                        edges {
                            node {
                                factSheet {
                                    id
                                    name
                                    displayName
                                }
                            }
                        }
                    }
                }
            }
        }
    }
}
`

const queryPing = `
query Ping {
    allFactSheets(factSheetType: Application, first: 1) {
        totalCount
    }
}
`
